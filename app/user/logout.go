package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// UserLogout clears the auth cookie. Sessions are stateless, so the
// credential itself stays valid until expiry; the server has nothing to
// revoke.
func UserLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	sslEnabled := viper.GetBool("host.ssl.enabled")
	c.SetCookie("auth_token", "", -1, "/", "", sslEnabled, true)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Logged out",
		"requestID": requestID,
	})
}
