// Copyright 2026 The vkren authors. All rights reserved.

package instance

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// DebugSeverity is a bitmask of diagnostic severities.
// The values match VkDebugUtilsMessageSeverityFlagBitsEXT.
type DebugSeverity uint32

// Severities.
const (
	SeverityVerbose DebugSeverity = 0x1
	SeverityInfo    DebugSeverity = 0x10
	SeverityWarning DebugSeverity = 0x100
	SeverityError   DebugSeverity = 0x1000
)

// String returns the names of the set severities, joined by "|".
func (s DebugSeverity) String() string {
	var names []string
	if s&SeverityVerbose != 0 {
		names = append(names, "VERBOSE")
	}
	if s&SeverityInfo != 0 {
		names = append(names, "INFO")
	}
	if s&SeverityWarning != 0 {
		names = append(names, "WARNING")
	}
	if s&SeverityError != 0 {
		names = append(names, "ERROR")
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// DebugType is a bitmask of diagnostic categories.
// The values match VkDebugUtilsMessageTypeFlagBitsEXT.
type DebugType uint32

// Categories.
const (
	TypeGeneral     DebugType = 0x1
	TypeValidation  DebugType = 0x2
	TypePerformance DebugType = 0x4
)

// String returns the names of the set categories, joined by "|".
func (t DebugType) String() string {
	var names []string
	if t&TypeGeneral != 0 {
		names = append(names, "GENERAL")
	}
	if t&TypeValidation != 0 {
		names = append(names, "VALIDATION")
	}
	if t&TypePerformance != 0 {
		names = append(names, "PERFORMANCE")
	}
	if len(names) == 0 {
		return "NONE"
	}
	return strings.Join(names, "|")
}

// DebugData describes a single diagnostic reported by the
// driver. Fields that the driver left null come through as
// empty strings.
type DebugData struct {
	MessageIDName   string
	MessageIDNumber int32
	Message         string
}

// DebugCallback handles one diagnostic.
// It is invoked on a thread owned by the driver/loader,
// asynchronously with respect to the thread that created the
// instance, so it must not touch instance state.
// The return value reports whether the driver call that
// triggered the diagnostic should be suppressed; conforming
// callbacks always return false.
type DebugCallback func(severity DebugSeverity, types DebugType, data *DebugData) bool

// DebugStrategy describes whether and how driver diagnostics
// are surfaced. It is a closed set: one of DebugIdle,
// DebugPrintAll or DebugPanicOnErrors, fixed for the lifetime
// of the instance it is given to.
type DebugStrategy struct {
	policy debugPolicy
	cb     DebugCallback
}

type debugPolicy int

const (
	debugIdle debugPolicy = iota
	debugPrint
	debugPanic
)

// The available strategies.
// DebugIdle surfaces nothing: no validation layer, no debug
// extension, no messenger. The other two enable the validation
// layer and install a messenger with one of the two fixed
// callbacks; they differ only on ERROR-severity diagnostics,
// which DebugPrintAll prints and DebugPanicOnErrors escalates
// to an unrecoverable panic.
var (
	DebugIdle          = DebugStrategy{}
	DebugPrintAll      = DebugStrategy{debugPrint, printAll}
	DebugPanicOnErrors = DebugStrategy{debugPanic, panicOnErrorsPrintOthers}
)

// Idle reports whether ds surfaces no diagnostics.
func (ds DebugStrategy) Idle() bool { return ds.policy == debugIdle }

// Callback returns the fixed callback that ds installs, or nil
// for DebugIdle.
func (ds DebugStrategy) Callback() DebugCallback { return ds.cb }

// Diagnostics subscribed to by the non-idle strategies.
const (
	debugSeverities = SeverityError | SeverityWarning | SeverityInfo
	debugTypes      = TypeGeneral | TypeValidation | TypePerformance
)

// debugOut is where the fixed callbacks write.
// Replaced in tests only; the driver may call back on its own
// thread, so stdout is the one piece of shared state allowed.
var debugOut io.Writer = os.Stdout

// formatDebug renders one diagnostic as a human-readable line.
// The format is not a stable machine-readable contract.
func formatDebug(severity DebugSeverity, types DebugType, data *DebugData) string {
	var name, msg string
	var num int32
	if data != nil {
		name = data.MessageIDName
		num = data.MessageIDNumber
		msg = data.Message
	}
	return fmt.Sprintf("%s, %s, [%s (%d)]: %s", severity, types, name, num, msg)
}

func printAll(severity DebugSeverity, types DebugType, data *DebugData) bool {
	fmt.Fprintln(debugOut, formatDebug(severity, types, data))
	return false
}

func panicOnErrorsPrintOthers(severity DebugSeverity, types DebugType, data *DebugData) bool {
	s := formatDebug(severity, types, data)
	if severity&SeverityError != 0 {
		panic(s)
	}
	fmt.Fprintln(debugOut, s)
	return false
}
