package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/alka-bakery/bakery-api/config"
	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 15 * time.Minute
	refreshTokenTTL = 7 * 24 * time.Hour
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshInput struct {
	RefreshToken string `json:"refresh_token"`
}

func signToken(userID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func issueTokenPair(userID string, cfg config.JWT) (access, refresh string, err error) {
	if access, err = signToken(userID, cfg.AccessSecret, accessTokenTTL); err != nil {
		return "", "", err
	}
	if refresh, err = signToken(userID, cfg.RefreshSecret, refreshTokenTTL); err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func setRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("refreshToken", token, int(refreshTokenTTL.Seconds()), "/", "", false, true)
}

// POST /api/auth/register
func Register(db *gorm.DB, cfg config.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var existing models.User
		if err := db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration error"})
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration error"})
			return
		}

		user := models.User{
			ID:       uuid.NewString(),
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashed),
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration error"})
			return
		}

		access, refresh, err := issueTokenPair(user.ID, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
			return
		}
		if err := db.Model(&user).Update("refresh_token", refresh).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Registration error"})
			return
		}

		setRefreshCookie(c, refresh)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Registration successful",
			"user":         user,
			"accessToken":  access,
			"refreshToken": refresh,
		})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB, cfg config.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		access, refresh, err := issueTokenPair(user.ID, cfg)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
			return
		}
		if err := db.Model(&user).Update("refresh_token", refresh).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Login failed"})
			return
		}

		setRefreshCookie(c, refresh)
		c.JSON(http.StatusOK, gin.H{
			"message":      "Login successful",
			"user":         user,
			"accessToken":  access,
			"refreshToken": refresh,
		})
	}
}

// POST /api/auth/refresh-token
func Refresh(db *gorm.DB, cfg config.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RefreshInput
		_ = c.ShouldBindJSON(&input)
		if input.RefreshToken == "" {
			input.RefreshToken, _ = c.Cookie("refreshToken")
		}
		if input.RefreshToken == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "No token"})
			return
		}

		userID, err := verifyRefreshToken(input.RefreshToken, cfg.RefreshSecret)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}
		if user.RefreshToken == nil || *user.RefreshToken != input.RefreshToken {
			c.JSON(http.StatusForbidden, gin.H{"message": "Invalid token"})
			return
		}

		access, err := signToken(user.ID, cfg.AccessSecret, accessTokenTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Token generation failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"accessToken": access})
	}
}

// POST /api/auth/logout
func Logout(db *gorm.DB, cfg config.JWT) gin.HandlerFunc {
	return func(c *gin.Context) {
		refresh, _ := c.Cookie("refreshToken")
		c.SetCookie("refreshToken", "", -1, "/", "", false, true)
		c.SetCookie("cart_id", "", -1, "/", "", false, true)

		if refresh != "" {
			if userID, err := verifyRefreshToken(refresh, cfg.RefreshSecret); err == nil {
				db.Model(&models.User{}).Where("id = ?", userID).Update("refresh_token", nil)
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
	}
}

func verifyRefreshToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("invalid token claims")
	}
	return userID, nil
}
