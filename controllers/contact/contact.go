package contactControllers

import (
	"net/http"

	"github.com/alka-bakery/bakery-api/config"
	"github.com/alka-bakery/bakery-api/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type ContactInput struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// POST /api/contact
//
// The message is stored first; the notification email is best-effort
// and never fails the request.
func SubmitContactForm(db *gorm.DB, cfg config.SMTP, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		msg := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Message: input.Message,
		}
		if err := db.Create(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save message"})
			return
		}

		if cfg.Host != "" && cfg.To != "" {
			go func() {
				m := gomail.NewMessage()
				m.SetHeader("From", cfg.User)
				m.SetHeader("To", cfg.To)
				m.SetHeader("Reply-To", input.Email)
				m.SetHeader("Subject", "New inquiry from "+input.Name)
				m.SetBody("text/plain", input.Message+"\n\nFrom: "+input.Name+" <"+input.Email+">")

				d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password)
				if err := d.DialAndSend(m); err != nil {
					log.Warn("contact notification failed", zap.Error(err))
				}
			}()
		}

		c.JSON(http.StatusCreated, gin.H{"message": "Thanks for reaching out, we'll get back to you soon"})
	}
}

// GET /api/admin/contact-messages
func GetContactMessages(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var messages []models.ContactMessage
		if err := db.Order("created_at desc").Find(&messages).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}
