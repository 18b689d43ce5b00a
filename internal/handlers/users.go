package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/response"
	"storefront/internal/services"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,strongpassword"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type profileRequest struct {
	ImageURL string `json:"imageUrl" binding:"required"`
}

type changePasswordRequest struct {
	Password string `json:"password" binding:"required,strongpassword"`
}

type roleRequest struct {
	IsAdmin      *bool `json:"isAdmin"`
	IsSuperAdmin *bool `json:"isSuperAdmin"`
}

func Register(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		err := users.Register(c.Request.Context(), services.RegisterInput{
			Username: req.Username,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			response.Error(c, "USER", err)
			return
		}
		response.Created(c, "User Registration is Success!", nil)
	}
}

// loginResponse keeps the token beside the envelope fields.
type loginResponse struct {
	response.Envelope
	Token string `json:"token"`
}

func Login(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		res, err := users.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			response.Error(c, "USER", err)
			return
		}

		c.JSON(http.StatusOK, loginResponse{
			Envelope: response.Envelope{
				Status: response.StatusSuccess,
				Msg:    "Welcome Back! " + res.User.Username,
				Data:   res.User,
			},
			Token: res.Token,
		})
	}
}

func GetMe() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		response.OK(c, "Current User Data", user)
	}
}

func UpdateProfilePicture(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req profileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updated, err := users.UpdateProfilePicture(c.Request.Context(), user, req.ImageURL)
		if err != nil {
			response.Error(c, "USER", err)
			return
		}
		response.OK(c, "Profile Picture is Updated!", updated)
	}
}

func ChangePassword(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updated, err := users.ChangePassword(c.Request.Context(), user, req.Password)
		if err != nil {
			response.Error(c, "USER", err)
			return
		}
		response.OK(c, "Password has changed successfully!", updated)
	}
}

func ListUsers(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		all, err := users.List(c.Request.Context(), user)
		if err != nil {
			response.Error(c, "USER", err)
			return
		}
		response.OK(c, "All Users", all)
	}
}

func UpdateUserRoles(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "userId")
		if !ok {
			return
		}
		var req roleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}
		if req.IsAdmin == nil && req.IsSuperAdmin == nil {
			response.Fail(c, http.StatusBadRequest, "isAdmin or isSuperAdmin is required")
			return
		}

		updated, err := users.UpdateRoles(c.Request.Context(), user, id, services.RoleUpdate{
			IsAdmin:      req.IsAdmin,
			IsSuperAdmin: req.IsSuperAdmin,
		})
		if err != nil {
			response.Error(c, "USER", err)
			return
		}
		response.OK(c, "User is Updated Successfully!", updated)
	}
}

func DeleteUser(users *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := actor(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "userId")
		if !ok {
			return
		}

		deleted, err := users.Delete(c.Request.Context(), user, id)
		if err != nil {
			response.Error(c, "USER", err)
			return
		}
		response.OK(c, "The User "+deleted.Username+" is Deleted!", deleted)
	}
}
