package discord

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Argument problems reported by the decoders. Each one corresponds to a
// user-facing rejection, not a transport failure.
var (
	ErrBadHour  = errors.New("hour out of range")
	ErrBadDay   = errors.New("day out of range")
	ErrBadName  = errors.New("name missing or too long")
	ErrBadTitle = errors.New("title missing or too long")
)

var validate = validator.New()

// AddArgs are the decoded options of the add command.
type AddArgs struct {
	Hour int    `validate:"min=0,max=23"`
	Day  *int   `validate:"omitempty,min=1,max=31"`
	Name string `validate:"omitempty,max=80"`
}

// RemoveArgs are the decoded options of the remove command. Every option
// is optional; without an hour the removal covers all upcoming slots.
type RemoveArgs struct {
	Hour *int   `validate:"omitempty,min=0,max=23"`
	Day  *int   `validate:"omitempty,min=1,max=31"`
	Name string `validate:"omitempty,max=80"`
}

// TitleArgs are the decoded options of the settitle and config commands.
type TitleArgs struct {
	Title string `validate:"required,max=100"`
}

// DecodeAddArgs extracts and validates the add command's options.
func DecodeAddArgs(data CommandData) (AddArgs, error) {
	var args AddArgs
	hour, ok, err := intOption(data, "hour")
	if err != nil || !ok {
		return args, ErrBadHour
	}
	args.Hour = hour
	if args.Day, err = optionalIntOption(data, "day"); err != nil {
		return args, ErrBadDay
	}
	if args.Name, err = stringOption(data, "name"); err != nil {
		return args, ErrBadName
	}
	return args, checkArgs(args)
}

// DecodeRemoveArgs extracts and validates the remove command's options.
func DecodeRemoveArgs(data CommandData) (RemoveArgs, error) {
	var args RemoveArgs
	var err error
	if args.Hour, err = optionalIntOption(data, "hour"); err != nil {
		return args, ErrBadHour
	}
	if args.Day, err = optionalIntOption(data, "day"); err != nil {
		return args, ErrBadDay
	}
	if args.Name, err = stringOption(data, "name"); err != nil {
		return args, ErrBadName
	}
	return args, checkArgs(args)
}

// DecodeTitleArgs extracts and validates a title-bearing command's options.
func DecodeTitleArgs(data CommandData) (TitleArgs, error) {
	var args TitleArgs
	var err error
	if args.Title, err = stringOption(data, "title"); err != nil {
		return args, ErrBadTitle
	}
	return args, checkArgs(args)
}

// checkArgs runs the struct validation tags and maps field failures onto
// the package's argument errors.
func checkArgs(args any) error {
	err := validate.Struct(args)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("validate arguments: %w", err)
	}
	switch fieldErrs[0].Field() {
	case "Hour":
		return ErrBadHour
	case "Day":
		return ErrBadDay
	case "Name":
		return ErrBadName
	case "Title":
		return ErrBadTitle
	}
	return fmt.Errorf("validate arguments: %w", err)
}

func findOption(data CommandData, name string) (json.RawMessage, bool) {
	for _, option := range data.Options {
		if option.Name == name {
			return option.Value, true
		}
	}
	return nil, false
}

// intOption decodes a required integer option. Discord encodes integer
// option values as JSON numbers.
func intOption(data CommandData, name string) (int, bool, error) {
	raw, ok := findOption(data, name)
	if !ok {
		return 0, false, nil
	}
	var value int
	if err := json.Unmarshal(raw, &value); err != nil {
		return 0, true, fmt.Errorf("option %q: %w", name, err)
	}
	return value, true, nil
}

func optionalIntOption(data CommandData, name string) (*int, error) {
	value, ok, err := intOption(data, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	return &value, nil
}

// stringOption decodes an optional string option, returning "" when absent.
func stringOption(data CommandData, name string) (string, error) {
	raw, ok := findOption(data, name)
	if !ok {
		return "", nil
	}
	var value string
	if err := json.Unmarshal(raw, &value); err != nil {
		return "", fmt.Errorf("option %q: %w", name, err)
	}
	return value, nil
}
