package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

type appointmentPayload struct {
	CounselorID   uint   `json:"counselorId"`
	SessionType   string `json:"sessionType"`
	PreferredDate string `json:"preferredDate"`
	PreferredTime string `json:"preferredTime"`
	Reason        string `json:"reason"`
	Urgency       string `json:"urgency"`
}

// CreateAppointment 提交预约申请
func (a *API) CreateAppointment(c *gin.Context) {
	var payload appointmentPayload
	if !bindJSON(c, &payload, "请求参数不合法") {
		return
	}

	preferredDate, ok := parseOptionalTime(payload.PreferredDate)
	if !ok || preferredDate == nil {
		respondError(c, http.StatusBadRequest, "无效的预约日期")
		return
	}

	appointment, err := a.appointments.Create(service.AppointmentInput{
		UserID:        currentUserID(c),
		CounselorID:   payload.CounselorID,
		SessionType:   payload.SessionType,
		PreferredDate: *preferredDate,
		PreferredTime: payload.PreferredTime,
		Reason:        payload.Reason,
		Urgency:       payload.Urgency,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCounselorNotFound):
			respondError(c, http.StatusNotFound, "咨询师不存在")
		case errors.Is(err, service.ErrSessionTypeUnavailable):
			respondError(c, http.StatusBadRequest, "该咨询师不提供此会谈形式")
		case errors.Is(err, service.ErrValidation):
			respondValidationError(c, err)
		default:
			respondError(c, http.StatusInternalServerError, "提交预约失败")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "预约申请提交成功",
		"appointment": appointmentToPayload(*appointment),
	})
}

// ListAppointments 返回当前用户的预约申请，可按状态过滤
func (a *API) ListAppointments(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 100)
	if !ok {
		return
	}

	result, err := a.appointments.List(service.AppointmentFilter{
		UserID: currentUserID(c),
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		handleServiceError(c, err, "获取预约列表失败")
		return
	}

	items := make([]gin.H, 0, len(result.Appointments))
	for _, appointment := range result.Appointments {
		items = append(items, appointmentToPayload(appointment))
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments": items,
		"pagination":   result.Pagination,
	})
}

func appointmentToPayload(appointment db.Appointment) gin.H {
	return gin.H{
		"id":             appointment.ID,
		"counselorId":    appointment.CounselorID,
		"counselorName":  appointment.Counselor.Name,
		"counselorTitle": appointment.Counselor.Title,
		"sessionType":    appointment.SessionType,
		"preferredDate":  appointment.PreferredDate.Format(dateFormat),
		"preferredTime":  appointment.PreferredTime,
		"reason":         appointment.Reason,
		"urgency":        appointment.Urgency,
		"status":         appointment.Status,
		"createdAt":      appointment.CreatedAt.Format(time.RFC3339),
	}
}
