package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/itchan-dev/boards/shared/errors"
)

// Length limits match the column sizes of the boards schema.
const (
	MaxBoardNameLen        = 30
	MaxBoardDescriptionLen = 100
	MaxSubjectLen          = 255
	MaxMessageLen          = 4000
)

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

type BoardValidator struct{}

func (e *BoardValidator) Name(name string) error {
	if !notBlank(name) {
		return errors.Validation("Name is required")
	}
	if utf8.RuneCountInString(name) > MaxBoardNameLen {
		return errors.Validation("Name is too long")
	}
	return nil
}

func (e *BoardValidator) Description(description string) error {
	if utf8.RuneCountInString(description) > MaxBoardDescriptionLen {
		return errors.Validation("Description is too long")
	}
	return nil
}

type PostValidator struct{}

func (e *PostValidator) Subject(subject string) error {
	if !notBlank(subject) {
		return errors.Validation("Subject is required")
	}
	if utf8.RuneCountInString(subject) > MaxSubjectLen {
		return errors.Validation("Subject is too long")
	}
	return nil
}

func (e *PostValidator) Message(message string) error {
	if !notBlank(message) {
		return errors.Validation("Message is required")
	}
	if utf8.RuneCountInString(message) > MaxMessageLen {
		return errors.Validation("Message is too long")
	}
	return nil
}
