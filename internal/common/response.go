package common

import "github.com/gin-gonic/gin"

// OK writes the uniform success envelope. Extra payload keys are merged
// flat into the response body next to "success".
func OK(c *gin.Context, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(200, body)
}

// Fail writes the uniform error envelope. msg is shown to the client as-is,
// so it must never carry internal detail.
func Fail(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{
		"success": false,
		"error":   msg,
	})
}
