package entity

import "errors"

// Domain errors for collection entries and related aggregates.
var (
	ErrInvalidWord    = errors.New("word requires latin text and meaning")
	ErrDuplicateWord  = errors.New("word already exists")
	ErrWordNotFound   = errors.New("word not found")
	ErrInvalidRule    = errors.New("rule requires title, category and note")
	ErrDuplicateRule  = errors.New("rule already exists")
	ErrRuleNotFound   = errors.New("rule not found")
	ErrInvalidIdiom   = errors.New("idiom requires latin text, literal translation and meaning")
	ErrDuplicateIdiom = errors.New("idiom already exists")
	ErrIdiomNotFound  = errors.New("idiom not found")
	ErrInvalidGoal    = errors.New("goal must be a positive number")
	ErrInvalidTarget  = errors.New("challenge target must be a positive number")
	ErrInvalidQuery   = errors.New("invalid list query")
)
