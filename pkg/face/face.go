// Package face defines face embedding extraction.
// Enrollment uses the HOG detector and tolerates photos without a usable face;
// group detection uses the configured strict backend and fails when no face is found.
package face

import (
	"errors"

	"FaceAttendance/internal/facematch"
)

const (
	DetectorHOG = "hog"
	DetectorCNN = "cnn"
)

var (
	ErrNoFaceDetected = errors.New("no face detected")
	ErrClosed         = errors.New("recognizer closed")
)

type IExtractor interface {
	Enroll(img []byte) (facematch.Embedding, bool, error)
	Detect(img []byte) ([]facematch.Embedding, error)
	Close()
}

type Config struct {
	ModelsDir     string
	GroupDetector string
	MaxImageSide  int
}
