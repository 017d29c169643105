// controllers/auth.go
package controllers

import (
	"net/http"

	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
)

type LoginInput struct {
	Password string `json:"password" binding:"required"`
}

// AuthController gates the admin area behind a single shared secret. The
// password hash is computed once at startup from the environment; a correct
// login is exchanged for a JWT consumed by the auth middleware.
type AuthController struct {
	PasswordHash string
}

func (ctl *AuthController) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.CheckPasswordHash(input.Password, ctl.PasswordHash) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken("admin")
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
	})
}

// Me confirms the session is still valid.
func (ctl *AuthController) Me(c *gin.Context) {
	subject, _ := c.Get("subject")
	c.JSON(http.StatusOK, gin.H{"subject": subject})
}
