package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeEdit   Type = "edit"
	TypeToggle Type = "toggle"
	TypeDelete Type = "delete"
	TypeFilter Type = "filter"
	TypeClear  Type = "clear"
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

type ClearScope string

const (
	ClearDone ClearScope = "done"
	ClearAll  ClearScope = "all"
)

type AddArgs struct {
	Text string
}

type EditArgs struct {
	Text string
}

type FilterArgs struct {
	Filter model.Filter
}

type ClearArgs struct {
	Scope ClearScope
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Edit   *EditArgs
	Filter *FilterArgs
	Clear  *ClearArgs
}

var aliases = map[string]Type{
	"new":  TypeAdd,
	"done": TypeToggle,
	"rm":   TypeDelete,
	"del":  TypeDelete,
	"show": TypeFilter,
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]
	typ := Type(head)
	if alias, ok := aliases[head]; ok {
		typ = alias
	}
	// keep inner spacing of free text
	rest := strings.TrimSpace(raw[len(parts[0]):])

	switch typ {
	case TypeAdd:
		return parseText(input, TypeAdd, rest)
	case TypeEdit:
		return parseText(input, TypeEdit, rest)
	case TypeToggle, TypeDelete:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s takes no arguments; it acts on the selected task", typ)}
		}
		return Command{Type: typ, Raw: input}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeClear:
		return parseClear(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseText(raw string, typ Type, text string) (Command, error) {
	text = model.NormalizeText(text)
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires text", typ)}
	}
	if err := model.CheckText(text); err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s text is longer than %d characters", typ, model.MaxTextLength)}
	}
	cmd := Command{Type: typ, Raw: raw}
	if typ == TypeAdd {
		cmd.Add = &AddArgs{Text: text}
	} else {
		cmd.Edit = &EditArgs{Text: text}
	}
	return cmd, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires one of: all, active, done"}
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter %q; use all, active or done", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseClear(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "clear requires a scope: done or all"}
	}
	switch scope := ClearScope(strings.ToLower(args[0])); scope {
	case ClearDone, ClearAll:
		return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Scope: scope}}, nil
	case "completed":
		return Command{Type: TypeClear, Raw: raw, Clear: &ClearArgs{Scope: ClearDone}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown clear scope %q", args[0])}
	}
}
