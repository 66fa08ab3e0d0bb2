// Package dlib extracts face embeddings with the dlib models loaded by go-face.
package dlib

import (
	"fmt"
	"sync"

	"FaceAttendance/internal/facematch"
	"FaceAttendance/pkg/face"
	"FaceAttendance/pkg/utils"

	goface "github.com/Kagami/go-face"
	"github.com/sirupsen/logrus"
)

type extractor struct {
	rec          *goface.Recognizer
	useCNN       bool
	maxImageSide int
	utils        utils.IUtils
	log          *logrus.Logger
	mu           sync.Mutex
}

func New(cfg face.Config, u utils.IUtils, log *logrus.Logger) (face.IExtractor, error) {
	log.WithFields(logrus.Fields{
		"models_dir":     cfg.ModelsDir,
		"group_detector": cfg.GroupDetector,
	}).Info("Loading face recognition models")

	rec, err := goface.NewRecognizer(cfg.ModelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load face models: %w", err)
	}

	return &extractor{
		rec:          rec,
		useCNN:       cfg.GroupDetector != face.DetectorHOG,
		maxImageSide: cfg.MaxImageSide,
		utils:        u,
		log:          log,
	}, nil
}

// Enroll returns the descriptor of the single face in img. ok is false when
// the detector does not find exactly one face.
func (e *extractor) Enroll(img []byte) (facematch.Embedding, bool, error) {
	data, err := e.utils.PrepareForDetection(img, e.maxImageSide)
	if err != nil {
		return nil, false, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec == nil {
		return nil, false, face.ErrClosed
	}

	f, err := e.rec.RecognizeSingle(data)
	if err != nil {
		return nil, false, fmt.Errorf("enrollment detection failed: %w", err)
	}
	if f == nil {
		return nil, false, nil
	}

	return toEmbedding(f.Descriptor), true, nil
}

func (e *extractor) Detect(img []byte) ([]facematch.Embedding, error) {
	data, err := e.utils.PrepareForDetection(img, e.maxImageSide)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec == nil {
		return nil, face.ErrClosed
	}

	var faces []goface.Face
	if e.useCNN {
		faces, err = e.rec.RecognizeCNN(data)
	} else {
		faces, err = e.rec.Recognize(data)
	}
	if err != nil {
		return nil, fmt.Errorf("group detection failed: %w", err)
	}

	if len(faces) == 0 {
		return nil, face.ErrNoFaceDetected
	}

	e.log.WithField("faces", len(faces)).Debug("Detected faces in group photo")

	embeddings := make([]facematch.Embedding, 0, len(faces))
	for _, f := range faces {
		embeddings = append(embeddings, toEmbedding(f.Descriptor))
	}

	return embeddings, nil
}

func (e *extractor) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec != nil {
		e.rec.Close()
		e.rec = nil
	}
}

func toEmbedding(d goface.Descriptor) facematch.Embedding {
	out := make(facematch.Embedding, len(d))
	copy(out, d[:])
	return out
}
