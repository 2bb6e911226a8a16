package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	TournamentHandler   *TournamentHandler
	RoundHandler        *RoundHandler
	ChatHandler         *ChatHandler
	PostHandler         *PostHandler
	NotificationHandler *NotificationHandler
	PushHandler         *PushHandler
	UploadHandler       *UploadHandler
	ConfigHandler       *ConfigHandler
}
