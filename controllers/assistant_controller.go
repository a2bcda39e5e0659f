package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kinotsolarpower/Wash-GoPRO/services"
)

// CustomerQuery is an inbound customer question awaiting a canned reply
type CustomerQuery struct {
	ID        string `json:"id"`
	Question  string `json:"question"`
	Source    string `json:"source"`
	Timestamp string `json:"timestamp"`
}

// cannedQueries is the demo support inbox shown on the assistant tab. A real
// deployment would sync these from the intake spreadsheet.
var cannedQueries = []CustomerQuery{
	{
		ID:        "q1",
		Question:  "Ik wil mijn Ford Focus laten reinigen, interieur en exterieur. Wat kost dat?",
		Source:    "Google Sheet",
		Timestamp: "2024-05-23T10:30:00Z",
	},
	{
		ID:        "q2",
		Question:  "Hoe lang duurt een kleine beurt voor een Volkswagen Golf?",
		Source:    "Google Sheet",
		Timestamp: "2024-05-23T11:15:00Z",
	},
	{
		ID:        "q3",
		Question:  "Kan ik mijn auto laten ophalen voor een service?",
		Source:    "Contact Form",
		Timestamp: "2024-05-23T12:05:00Z",
	},
	{
		ID:        "q4",
		Question:  "Do you offer ceramic coatings and what is the price for a BMW 5 series?",
		Source:    "Google Sheet",
		Timestamp: "2024-05-23T14:00:00Z",
	},
}

// ListQueries handles GET /api/v1/assistant/queries (admin only)
func ListQueries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cannedQueries,
	})
}

// AnswerRequest represents the request body for generating a support reply
type AnswerRequest struct {
	Question string `json:"question" binding:"required"`
}

// GenerateAnswer handles POST /api/v1/assistant/answer (admin only) -
// produces a short customer-ready reply via the AI gateway
func GenerateAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "A question is required",
			},
		})
		return
	}

	answer, err := services.GetAIService().AnswerQuery(req.Question)
	if err != nil {
		aiErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"answer": answer,
		},
	})
}
