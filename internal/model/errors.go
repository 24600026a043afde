package model

import "errors"

var ErrNoRecord = errors.New("no record")
var ErrAlreadyExists = errors.New("entity already exists")

var ErrSeriesNotFound = errors.New("series not found")
var ErrTemplateNotFound = errors.New("template event not found")

var ErrInvalidRecurrenceRule = errors.New("invalid recurrence rule")
var ErrInvalidOccurrenceDate = errors.New("date is not a valid occurrence of the series")

var ErrTimeout = errors.New("operation timed out")
