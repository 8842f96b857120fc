package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"webpersonal/api/internal/middleware"
	"webpersonal/api/internal/service"
)

func (h HandlerSet) GetMe(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.userService.GetMe(c.Request.Context(), userID)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) ListUsers(c *gin.Context) {
	var active *bool
	if raw, ok := c.GetQuery("active"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active must be a boolean"})
			return
		}
		active = &parsed
	}

	users, err := h.userService.ListUsers(c.Request.Context(), active)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}

	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) CreateUser(c *gin.Context) {
	input := service.CreateUserInput{
		Firstname: c.PostForm("firstname"),
		Lastname:  c.PostForm("lastname"),
		Email:     c.PostForm("email"),
		Password:  c.PostForm("password"),
		Role:      c.PostForm("role"),
	}

	if file, header, err := c.Request.FormFile("avatar"); err == nil {
		defer file.Close()
		input.Avatar = &service.AvatarUpload{File: file, Header: header}
	}

	user, err := h.userService.CreateUser(c.Request.Context(), input)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) UpdateUser(c *gin.Context) {
	id := c.Param("id")

	var input service.UpdateUserInput
	if v, ok := c.GetPostForm("firstname"); ok {
		input.Firstname = &v
	}
	if v, ok := c.GetPostForm("lastname"); ok {
		input.Lastname = &v
	}
	if v, ok := c.GetPostForm("email"); ok {
		input.Email = &v
	}
	if v, ok := c.GetPostForm("password"); ok {
		input.Password = &v
	}
	if v, ok := c.GetPostForm("role"); ok {
		input.Role = &v
	}
	if v, ok := c.GetPostForm("active"); ok {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "active must be a boolean"})
			return
		}
		input.Active = &parsed
	}

	if file, header, err := c.Request.FormFile("avatar"); err == nil {
		defer file.Close()
		input.Avatar = &service.AvatarUpload{File: file, Header: header}
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, input)
	if err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h HandlerSet) DeleteUser(c *gin.Context) {
	id := c.Param("id")

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		c.JSON(errorStatus(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "user deleted"})
}
