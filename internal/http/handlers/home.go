package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const greetingHTML = "<p>Hello, World!</p>"

func Home(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(greetingHTML))
}
