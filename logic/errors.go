package logic

import "fmt"

// ValidationError 请求在派发前被拒绝：不创建记录，映射为 4xx
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

func validationErrorf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}
