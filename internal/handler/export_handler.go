package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExportData 汇总当前用户的全部个人数据，以附件形式下发 JSON
func (a *API) ExportData(c *gin.Context) {
	userID := currentUserID(c)

	user, err := a.users.Get(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}

	moods, err := a.moods.ListAll(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}
	journals, err := a.journals.ListAll(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}
	appointments, err := a.appointments.ListAll(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}
	chats, err := a.chats.SessionsWithMessages(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "导出数据失败")
		return
	}

	moodPayloads := make([]gin.H, 0, len(moods))
	for _, entry := range moods {
		moodPayloads = append(moodPayloads, moodToPayload(entry))
	}
	journalPayloads := make([]gin.H, 0, len(journals))
	for _, entry := range journals {
		journalPayloads = append(journalPayloads, journalToPayload(entry))
	}
	appointmentPayloads := make([]gin.H, 0, len(appointments))
	for _, appointment := range appointments {
		appointmentPayloads = append(appointmentPayloads, appointmentToPayload(appointment))
	}

	now := time.Now()
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="mindcare-export-%s.json"`, now.Format(dateFormat)))
	c.JSON(http.StatusOK, gin.H{
		"exportedAt":   now.Format(time.RFC3339),
		"user":         userToPayload(user),
		"moodEntries":  moodPayloads,
		"journal":      journalPayloads,
		"appointments": appointmentPayloads,
		"chatSessions": chats,
	})
}
