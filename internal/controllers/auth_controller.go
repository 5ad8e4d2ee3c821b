package controllers

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"loadboard/internal/middleware"
	"loadboard/internal/models"
	"loadboard/internal/storage"
)

// CreateUser handles POST /api/add-user. The body is multipart: account fields
// plus an optional profilePic file that goes to the object store first.
func (h *Handler) CreateUser(c *gin.Context) {
	user := models.User{
		FirstName:   c.PostForm("firstName"),
		LastName:    c.PostForm("lastName"),
		Email:       strings.TrimSpace(c.PostForm("email")),
		Phone:       c.PostForm("phone"),
		AccountType: c.PostForm("accountType"),
		Gender:      c.PostForm("gender"),
		Country:     c.PostForm("country"),
		Language:    c.PostForm("language"),
		Status:      models.UserStatusIdle,
	}
	password := c.PostForm("password")
	if user.Email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	hashedPassword, err := hashPassword(password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is too long"})
			return
		}
		logrus.WithError(err).Error("CreateUser: could not hash password")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving user data"})
		return
	}
	user.Password = hashedPassword

	var taken int64
	if err := h.DB.Model(&models.User{}).Where("email = ?", user.Email).Count(&taken).Error; err != nil {
		logrus.WithError(err).Error("CreateUser: email lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving user data"})
		return
	}
	if taken > 0 {
		c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
		return
	}

	if fh, err := c.FormFile("profilePic"); err == nil {
		f, err := fh.Open()
		if err != nil {
			logrus.WithError(err).Error("CreateUser: could not open profile picture")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving user data"})
			return
		}
		defer f.Close()

		opts := storage.ProfilePicture.WithPublicID(fh.Filename, time.Now())
		url, err := h.Files.Upload(c.Request.Context(), f, opts)
		h.Metrics.ObserveUpload(opts.Folder, err)
		if err != nil {
			logrus.WithError(err).Error("CreateUser: profile picture upload failed")
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving user data"})
			return
		}
		user.ProfilePic = &url
	}

	if err := h.DB.Create(&user).Error; err != nil {
		entry := logrus.WithError(err)
		if user.ProfilePic != nil {
			entry = entry.WithField("profile_pic", *user.ProfilePic)
		}
		if isUniqueViolation(err) {
			entry.Warn("CreateUser: email taken concurrently, profile picture left orphaned")
			c.JSON(http.StatusConflict, gin.H{"message": "Email already in use"})
			return
		}
		entry.Error("CreateUser: insert failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving user data"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User added successfully",
		"user":    user,
	})
}

// LoginUser handles POST /api/login.
func (h *Handler) LoginUser(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	var user models.User
	if err := h.DB.Where("email = ?", strings.TrimSpace(body.Email)).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User email not found"})
			return
		}
		logrus.WithError(err).Error("LoginUser: lookup failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if !checkPassword(user.Password, body.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Password is incorrect"})
		return
	}

	token, err := h.Auth.GenerateToken(user.UserID, user.AccountType)
	if err != nil {
		logrus.WithError(err).Error("LoginUser: could not sign token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"account_type": user.AccountType,
		"user_id":      user.UserID,
		"message":      "Login successful",
		"token":        token,
	})
}

// ListUsers handles GET /api/users. Passwords never leave the store.
func (h *Handler) ListUsers(c *gin.Context) {
	users := []models.UserSummary{}
	if err := h.DB.Model(&models.User{}).
		Select(models.UserSummaryColumns).
		Order("user_id").
		Find(&users).Error; err != nil {
		logrus.WithError(err).Error("ListUsers: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me returns the summary of the token holder.
func (h *Handler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var user models.UserSummary
	if err := h.DB.Model(&models.User{}).
		Select(models.UserSummaryColumns).
		Where("user_id = ?", userID).
		Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		logrus.WithError(err).Error("Me: query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// checkPassword verifies against a bcrypt hash. Rows written before hashing
// was introduced hold the password verbatim and are compared in constant time.
func checkPassword(stored, given string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(given)) == 1
}

func isBcryptHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}
