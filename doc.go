// Package pictor provides an in-memory multi-channel image buffer and
// pixel-level transforms for Go.
//
// # Overview
//
// pictor stores decoded images as flat, interleaved sample slices with
// an explicit shape (width, height, channels, optional trailing alpha).
// The buffer is generic over the sample type: uint8 and uint16 samples
// saturate on writeback, float32 and float64 samples are stored as
// computed. Transforms never modify their input; every operation
// allocates and returns a fresh buffer.
//
// # Quick Start
//
//	import (
//	    "github.com/pictor-go/pictor/codec"
//	    "github.com/pictor-go/pictor/filter"
//	)
//
//	img, err := codec.DecodeFile("input.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blurred, err := filter.Gaussian(img, 5, 1.4, filter.Opts{Parallel: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := codec.EncodeFile("output.png", blurred); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The library is organized into:
//   - Root package: Image, ImageInfo, Kernel, Edge, sample conversion
//   - filter: convolution, order-statistic, threshold and bilateral filters
//   - transform: crop, translate, reflect, overlay and resampling
//   - colorspace: sRGB, linear RGB, XYZ, CIELAB and HSV conversions
//   - tone: brightness, contrast, saturation, gamma, histogram equalization
//   - morph: binary erosion and dilation
//   - codec: PNG, JPEG, GIF, BMP, TIFF and WebP container handling
//
// # Coordinate System
//
// Pixel (0, 0) is the top-left corner; x increases right and y
// increases down. A pixel is a contiguous run of channel samples.
//
// # Concurrency
//
// Images are not safe for concurrent mutation, but all transforms read
// their input immutably, so any number of operations may run on the
// same source image at once. Operations with an Opts.Parallel switch
// partition their output into row bands; the result is bit-identical
// to a sequential run.
package pictor

// Version information
const (
	// Version is the current version of the library
	Version = "0.3.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 3

	// VersionPatch is the patch version
	VersionPatch = 0
)
