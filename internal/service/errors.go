package service

import "errors"

var (
	ErrParishNotFound        = errors.New("parish not found")
	ErrPetitionNotFound      = errors.New("petition not found")
	ErrTemplateNotFound      = errors.New("template not found")
	ErrSystemTemplate        = errors.New("cannot delete system template")
	ErrVersionConflict       = errors.New("petition was modified by someone else")
	ErrInvalidLanguage       = errors.New("invalid language")
	ErrInvalidPromptTemplate = errors.New("prompt template contains unknown placeholders")
)
