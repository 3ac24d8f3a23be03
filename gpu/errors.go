package gpu

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v4.3-core/gl"
)

// GL error codes. Context loss is only named by GL 4.5 headers.
const (
	codeNoError                     = 0
	codeInvalidEnum                 = 0x0500
	codeInvalidValue                = 0x0501
	codeInvalidOperation            = 0x0502
	codeStackOverflow               = 0x0503
	codeStackUnderflow              = 0x0504
	codeOutOfMemory                 = 0x0505
	codeInvalidFramebufferOperation = 0x0506
	codeContextLost                 = 0x0507
)

// maxPolledErrors bounds one poll. A lost context can keep reporting.
const maxPolledErrors = 16

var errorNames = map[uint32]string{
	codeInvalidEnum:                 "invalid enum",
	codeInvalidValue:                "invalid value",
	codeInvalidOperation:            "invalid operation",
	codeStackOverflow:               "stack overflow",
	codeStackUnderflow:              "stack underflow",
	codeOutOfMemory:                 "out of memory",
	codeInvalidFramebufferOperation: "invalid framebuffer operation",
	codeContextLost:                 "context lost",
}

// ErrorName returns the category of a GL error code.
func ErrorName(code uint32) string {
	if name, ok := errorNames[code]; ok {
		return name
	}
	return fmt.Sprintf("unknown error 0x%04x", code)
}

// PollErrors drains up to limit entries from the GL error queue. A
// non-positive limit uses the default cap.
func PollErrors(limit int) []uint32 {
	if limit <= 0 {
		limit = maxPolledErrors
	}
	var codes []uint32
	for i := 0; i < limit; i++ {
		code := gl.GetError()
		if code == codeNoError {
			break
		}
		codes = append(codes, code)
	}
	return codes
}

// LogErrors drains the error queue and logs each entry. Errors are not
// fatal; it returns how many were seen.
func LogErrors(logger *slog.Logger, frame int64, limit int) int {
	codes := PollErrors(limit)
	for _, code := range codes {
		logger.Warn("gl error",
			"frame", frame,
			"code", fmt.Sprintf("0x%04x", code),
			"category", ErrorName(code),
		)
	}
	return len(codes)
}
