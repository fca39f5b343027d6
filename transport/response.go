package transport

import (
	"encoding/json"
	goerrors "errors"
	"net/http"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
	"github.com/muhammadheryan/marketplace/utils/errors"
	"github.com/muhammadheryan/marketplace/utils/logger"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, body model.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("[writeJSON] encode response", zap.String("error", err.Error()))
	}
}

func writeSuccess(w http.ResponseWriter, status int, body model.Response) {
	body.Success = true
	writeJSON(w, status, body)
}

// writeError renders err as the failure envelope. Anything that is not a
// CustomError is reported as an internal error; the cause is only exposed in
// development.
func (s *RestHandler) writeError(w http.ResponseWriter, err error) {
	var ce errors.CustomError
	if !goerrors.As(err, &ce) {
		logger.Error("[writeError] unexpected error", zap.String("error", err.Error()))
		ce = errors.SetCustomError(constant.ErrInternal).WithCause(err)
	}

	body := model.Response{
		Message: ce.Error(),
		Error:   constant.ErrorTypeMessage[ce.Type()],
		Code:    ce.ErrorCode(),
	}
	if s.development && ce.Cause() != nil {
		body.Detail = ce.Cause().Error()
	}
	writeJSON(w, ce.ErrorHTTPCode(), body)
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Request body is required")
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errors.SetCustomError(constant.ErrInvalidRequest).WithMessage("Invalid JSON body").WithCause(err)
	}
	return nil
}
