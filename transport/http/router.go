package http

import (
	"github.com/gin-gonic/gin"
	"github.com/thirdevent/gatekeeper/service"
)

// SetupRouter sets up the Gin router. Authorization endpoints sit behind
// both guards: a valid session cookie and a fresh wallet signature.
func SetupRouter(auth *service.AuthService, mint *service.MintService, secureCookies bool) *gin.Engine {
	router := gin.Default()

	handlers := NewAuthHandlers(auth, mint, secureCookies)

	api := router.Group("/api")
	{
		api.POST("/login", handlers.Login)
		// Logout stays unguarded so an expired session can still be cleared.
		api.POST("/logout", handlers.Logout)
		api.GET("/current-time", handlers.CurrentTime)

		session := api.Group("")
		session.Use(SessionGuard(auth))
		{
			session.GET("/me", handlers.Me)
		}

		authorized := api.Group("/auth")
		authorized.Use(SessionGuard(auth), SignatureGuard(auth))
		{
			authorized.POST("/getSignatureToMint", handlers.GetSignatureToMint)
			authorized.POST("/getSignatureToClaim", handlers.GetSignatureToClaim)
		}
	}

	return router
}
