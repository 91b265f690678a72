package store

// 业务错误按种类区分，API 层据此映射 HTTP 状态码。
// 底层存储的意外错误直接以包装后的 error 透传，由 API 层统一按 500 处理。

// ValidationError 输入不合法（空内容、超长等）
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError 引用的评论或用户不存在
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string { return e.Msg }

// AuthorizationError 当前用户无权执行该操作
type AuthorizationError struct {
	Msg string
}

func (e *AuthorizationError) Error() string { return e.Msg }
