package api

import (
	"net/http"

	"disparo-dashboard/internal/database"
	"disparo-dashboard/internal/models"
	"disparo-dashboard/internal/status"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct{}

func NewContactHandler() *ContactHandler {
	return &ContactHandler{}
}

// ContactRow is a contact plus its derived dispatch status. The status is
// never stored; it is recomputed on every read.
type ContactRow struct {
	Phone    string        `json:"telefone_principal"`
	FullName string        `json:"nome_completo"`
	Status   status.Status `json:"status"`
}

// GetContacts lists contacts with optional text search (?q=) across name
// and phone, and optional bucket filtering (?bucket=sent|not-sent). "Sent"
// means any status other than none.
func (h *ContactHandler) GetContacts(c *gin.Context) {
	query := database.DB.Model(&models.Contact{})

	if q := c.Query("q"); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("LOWER(nome_completo) LIKE LOWER(?) OR telefone_principal LIKE ?", pattern, pattern)
	}

	var contacts []models.Contact
	if err := query.Find(&contacts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Não foi possível carregar os contatos"})
		return
	}

	bucket := c.Query("bucket")
	rows := []ContactRow{}
	for _, contact := range contacts {
		st := status.Classify(contact.DispatchCompleted, contact.DispatchScheduled)
		switch bucket {
		case "sent":
			if st == status.None {
				continue
			}
		case "not-sent":
			if st != status.None {
				continue
			}
		}
		rows = append(rows, ContactRow{
			Phone:    contact.Phone,
			FullName: contact.FullName,
			Status:   st,
		})
	}

	c.JSON(http.StatusOK, rows)
}
