package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная проблема - на первое время
	UnknownCode Code = 0

	// Категории проблем с пробелами
	WsTrailSpace   Code = 1001
	WsEOFBlanks    Code = 1002
	WsEOFNewline   Code = 1003
	WsEOLMismatch  Code = 1004
	WsTabSpaceMix  Code = 1005
	WsChangeTabs   Code = 1006
	WsChangeSpaces Code = 1007

	// Конфигурация
	CfgDowngrade Code = 2001

	// Трассировка движка
	ProcDecompose Code = 3001
	ProcRewrite   Code = 3002
)

// ID returns the stable user-facing identifier of the code.
func (c Code) ID() string {
	return fmt.Sprintf("WTF%04d", uint16(c))
}

func (c Code) String() string {
	switch c {
	case WsTrailSpace:
		return "trail-space"
	case WsEOFBlanks:
		return "eof-blanks"
	case WsEOFNewline:
		return "eof-newl"
	case WsEOLMismatch:
		return "eol"
	case WsTabSpaceMix:
		return "tab-space-mix"
	case WsChangeTabs:
		return "change-tabs"
	case WsChangeSpaces:
		return "change-spaces"
	case CfgDowngrade:
		return "config-downgrade"
	case ProcDecompose:
		return "decompose"
	case ProcRewrite:
		return "rewrite"
	}
	return "unknown"
}
