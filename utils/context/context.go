package context

import (
	"context"

	"github.com/muhammadheryan/marketplace/constant"
	"github.com/muhammadheryan/marketplace/model"
)

func GetUserID(ctx context.Context) (uint64, bool) {
	v := ctx.Value(constant.UserIDKey)
	if v == nil {
		return 0, false
	}
	id, ok := v.(uint64)
	return id, ok
}

func GetSessionID(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(constant.SessionIDKey).(string)
	return v, ok && v != ""
}

// WithIdentity stores the authenticated caller on the context.
func WithIdentity(ctx context.Context, identity *model.Identity) context.Context {
	ctx = context.WithValue(ctx, constant.UserIDKey, identity.UserID)
	ctx = context.WithValue(ctx, constant.UserEmailKey, identity.Email)
	return context.WithValue(ctx, constant.SessionIDKey, identity.SessionID)
}
