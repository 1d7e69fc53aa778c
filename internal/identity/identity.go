package identity

import "context"

// Viewer - сигнал от внешнего провайдера авторизации.
// Нулевое значение означает, что пользователь не вошёл и ограничений нет.
type Viewer struct {
	Authenticated bool
	UserID        string
}

type contextKey string

const viewerKey contextKey = "viewer"

func Anonymous() Viewer {
	return Viewer{}
}

func User(userID string) Viewer {
	return Viewer{Authenticated: true, UserID: userID}
}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

func FromContext(ctx context.Context) Viewer {
	if v, ok := ctx.Value(viewerKey).(Viewer); ok {
		return v
	}
	return Anonymous()
}
