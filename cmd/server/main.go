package main

import (
	"github.com/mynews-app/backend/app"
	"github.com/mynews-app/backend/openapi"
	"github.com/mynews-app/backend/services/auth"
	"github.com/mynews-app/backend/services/captcha"
	"github.com/mynews-app/backend/services/jwt"
	"github.com/mynews-app/backend/services/mail"
	"github.com/mynews-app/backend/services/news"
	"github.com/mynews-app/backend/services/users"
)

func main() {
	app.New(nil,
		mail.Module,
		jwt.Module,
		captcha.Module,
		auth.Module,
		users.Module,
		news.Module,
		openapi.Module,
	).Run()
}
