// controllers/client.go
package controllers

import (
	"errors"
	"net/http"

	"salaomovel-backend/services"
	"salaomovel-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
	Notes string `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
	Notes *string `json:"notes"`
}

type ClientController struct {
	Data *services.DataService
}

// CreateClient registers a new client
func (ctl *ClientController) CreateClient(c *gin.Context) {
	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.Phone != "" && !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	client, err := ctl.Data.AddClient(input.Name, input.Phone, input.Email, input.Notes)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create client")
		}
		return
	}

	c.JSON(http.StatusCreated, client)
}

// GetClients retrieves all clients
func (ctl *ClientController) GetClients(c *gin.Context) {
	clients, err := ctl.Data.Clients()
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	c.JSON(http.StatusOK, clients)
}

// GetClient retrieves a specific client by ID, with their appointments
func (ctl *ClientController) GetClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	client, err := ctl.Data.GetClientByID(id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Storage error")
		}
		return
	}

	appointments, err := ctl.Data.AppointmentsByClient(id)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Storage error")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"client":       client,
		"appointments": appointments,
	})
}

// UpdateClient updates an existing client's identity fields
func (ctl *ClientController) UpdateClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client, err := ctl.Data.GetClientByID(id)
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Storage error")
		}
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Phone != nil {
		if *input.Phone != "" && !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		client.Phone = *input.Phone
	}
	if input.Email != nil {
		client.Email = *input.Email
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	client, err = ctl.Data.UpdateClient(client)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update client")
		}
		return
	}

	c.JSON(http.StatusOK, client)
}

// DeleteClient removes a client and cascades to their appointments
func (ctl *ClientController) DeleteClient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid client ID format")
		return
	}

	if err := ctl.Data.DeleteClient(id); err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete client")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}
