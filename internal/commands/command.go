package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/tasklist/internal/model"
)

type Type string

const (
	TypeAdd      Type = "add"
	TypeCategory Type = "category"
	TypeFilter   Type = "filter"
	TypeShow     Type = "show"
	TypeClear    Type = "clear"
	TypeToggle   Type = "toggle"
	TypeDelete   Type = "delete"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type AddArgs struct {
	Text string
}

// CategoryArgs carries an empty Icon when the command did not name one.
type CategoryArgs struct {
	Name string
	Icon string
}

type FilterArgs struct {
	Filter model.StatusFilter
}

type ShowArgs struct {
	Category string
}

// TaskArgs targets the task under the cursor when ID is empty.
type TaskArgs struct {
	ID string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Category *CategoryArgs
	Filter   *FilterArgs
	Show     *ShowArgs
	Task     *TaskArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeCategory:
		return parseCategory(input, args)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeShow:
		return parseShow(input, args)
	case TypeClear:
		return Command{Type: TypeClear, Raw: input}, nil
	case TypeToggle, TypeDelete:
		return parseTask(input, Type(head), args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires task text"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Text: text}}, nil
}

// parseCategory treats a trailing catalogue icon name as the icon, so
// "category shopping list shopping-cart" names "shopping list".
func parseCategory(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "category requires a name"}
	}
	icon := ""
	if len(args) > 1 && model.IsKnownIcon(strings.ToLower(args[len(args)-1])) {
		icon = strings.ToLower(args[len(args)-1])
		args = args[:len(args)-1]
	}
	return Command{Type: TypeCategory, Raw: raw, Category: &CategoryArgs{Name: strings.Join(args, " "), Icon: icon}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of all, active, completed"}
	}
	f, err := model.ParseStatusFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a category"}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &ShowArgs{Category: model.NormalizeCategoryName(strings.Join(args, " "))}}, nil
}

func parseTask(raw string, typ Type, args []string) (Command, error) {
	if len(args) > 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes at most one task id", typ)}
	}
	id := ""
	if len(args) == 1 {
		id = args[0]
	}
	return Command{Type: typ, Raw: raw, Task: &TaskArgs{ID: id}}, nil
}
