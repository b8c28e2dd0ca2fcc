package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationCode 请求校验错误类型
type ValidationCode string

const (
	CodeMalformedJSON   ValidationCode = "malformed_json"
	CodeInvalidType     ValidationCode = "invalid_type"
	CodeMissingMessages ValidationCode = "missing_messages"
	CodeInvalidMessage  ValidationCode = "invalid_message"
	CodeMissingText     ValidationCode = "missing_text"
	CodeMissingVoiceID  ValidationCode = "missing_voice_id"
	CodeOutOfRange      ValidationCode = "out_of_range"
)

// ValidationError 请求体校验失败
type ValidationError struct {
	Code    ValidationCode
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// 错误中的字段名使用 json tag
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})

	return v
}

// ParseChatRequest 解析并校验对话请求
// 旧格式 {message} 会被转换为单条 user 消息
func ParseChatRequest(body []byte) (*ChatRequest, error) {
	var req ChatRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	if len(req.Messages) == 0 {
		if strings.TrimSpace(req.Message) == "" {
			return nil, &ValidationError{
				Code:    CodeMissingMessages,
				Field:   "messages",
				Message: "messages[] required",
			}
		}
		req.Messages = []ChatMessage{{Role: RoleUser, Content: req.Message}}
		req.legacy = true
	}

	if err := validate.Struct(&req); err != nil {
		return nil, translate(err)
	}

	return &req, nil
}

// ParseSpeechRequest 解析并校验语音合成请求
// voiceId 为空时使用 defaultVoiceID
func ParseSpeechRequest(body []byte, defaultVoiceID string) (*SpeechRequest, error) {
	var req SpeechRequest
	if err := decode(body, &req); err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.VoiceID) == "" {
		req.VoiceID = defaultVoiceID
	}

	if err := validate.Struct(&req); err != nil {
		return nil, translate(err)
	}

	return &req, nil
}

func decode(body []byte, dest any) error {
	if err := json.Unmarshal(body, dest); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return &ValidationError{
				Code:    CodeInvalidType,
				Field:   typeErr.Field,
				Message: fmt.Sprintf("Field '%s' must be %s", typeErr.Field, jsonKind(typeErr.Type)),
			}
		}
		return &ValidationError{
			Code:    CodeMalformedJSON,
			Message: "Invalid JSON body",
		}
	}
	return nil
}

// translate 将 validator 错误转换为 ValidationError（取第一个）
func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Code: CodeMalformedJSON, Message: err.Error()}
	}

	fe := fieldErrs[0]
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}

	switch {
	case strings.HasPrefix(field, "messages["):
		return &ValidationError{
			Code:    CodeInvalidMessage,
			Field:   field,
			Message: fmt.Sprintf("Field '%s' must be one of user, assistant, system", field),
		}
	case fe.Tag() == "gte" || fe.Tag() == "lte":
		return &ValidationError{
			Code:    CodeOutOfRange,
			Field:   field,
			Message: fmt.Sprintf("Field '%s' must be a number in [0,1]", field),
		}
	case field == "voiceId":
		return &ValidationError{
			Code:    CodeMissingVoiceID,
			Field:   field,
			Message: "Field 'voiceId' must be a non-empty string",
		}
	default:
		return &ValidationError{
			Code:    CodeMissingText,
			Field:   field,
			Message: fmt.Sprintf("Field '%s' must be a non-empty string", field),
		}
	}
}

func jsonKind(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Pointer:
		return jsonKind(t.Elem())
	case reflect.String:
		return "a string"
	case reflect.Float32, reflect.Float64, reflect.Int, reflect.Int64:
		return "a number"
	case reflect.Slice:
		return "an array"
	default:
		return "a valid value"
	}
}
