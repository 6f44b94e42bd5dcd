package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ResCode 业务错误码
type ResCode int64

const (
	CodeSuccess ResCode = 1000 + iota
	CodeInvalidParams
	CodeModelNotSupported
	CodeServerBusy
)

var codeMsgMap = map[ResCode]string{
	CodeSuccess:           "success",
	CodeInvalidParams:     "invalid request params",
	CodeModelNotSupported: "model not supported",
	CodeServerBusy:        "server busy",
}

// Msg 错误码对应的提示文案
func (c ResCode) Msg() string {
	msg, ok := codeMsgMap[c]
	if !ok {
		return codeMsgMap[CodeServerBusy]
	}
	return msg
}

func httpStatus(code ResCode) int {
	switch code {
	case CodeInvalidParams, CodeModelNotSupported:
		return http.StatusBadRequest
	case CodeServerBusy:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

// ResponseError 返回统一错误响应
func ResponseError(c *gin.Context, code ResCode) {
	c.JSON(httpStatus(code), gin.H{
		"code": code,
		"msg":  code.Msg(),
	})
}

// ResponseErrorWithMsg 返回带自定义提示的错误响应
func ResponseErrorWithMsg(c *gin.Context, code ResCode, msg interface{}) {
	c.JSON(httpStatus(code), gin.H{
		"code": code,
		"msg":  msg,
	})
}

// ResponseSuccess 返回统一成功响应
func ResponseSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"code": CodeSuccess,
		"msg":  CodeSuccess.Msg(),
		"data": data,
	})
}
