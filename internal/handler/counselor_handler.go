package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mindcare/internal/db"
	"github.com/mindcare/internal/service"
)

// ListCounselors 返回筛选、排序、分页后的咨询师列表
func (a *API) ListCounselors(c *gin.Context) {
	limit, offset, ok := parsePagination(c, 20, 50)
	if !ok {
		return
	}

	result, err := a.counselors.List(service.CounselorFilter{
		Specialty:    c.Query("specialty"),
		Location:     c.Query("location"),
		Availability: c.Query("availability"),
		SessionType:  c.Query("sessionType"),
		Limit:        limit,
		Offset:       offset,
	}, time.Now())
	if err != nil {
		handleServiceError(c, err, "获取咨询师列表失败")
		return
	}

	items := make([]gin.H, 0, len(result.Counselors))
	for _, counselor := range result.Counselors {
		items = append(items, counselorToPayload(counselor))
	}

	c.JSON(http.StatusOK, gin.H{
		"counselors": items,
		"pagination": result.Pagination,
	})
}

// GetCounselor 返回单个咨询师详情
func (a *API) GetCounselor(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的咨询师ID")
		return
	}

	counselor, err := a.counselors.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCounselorNotFound) {
			respondError(c, http.StatusNotFound, "咨询师不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取咨询师失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"counselor": counselorToPayload(*counselor)})
}

func counselorToPayload(counselor db.Counselor) gin.H {
	return gin.H{
		"id":             counselor.ID,
		"name":           counselor.Name,
		"title":          counselor.Title,
		"bio":            counselor.Bio,
		"specialties":    counselor.Specialties,
		"qualifications": counselor.Qualifications,
		"experience":     counselor.Experience,
		"location": gin.H{
			"city":  counselor.City,
			"state": counselor.State,
		},
		"availability": gin.H{
			"schedule":           counselor.Schedule,
			"nextAvailable":      counselor.NextAvailable.Format(time.RFC3339),
			"emergencyAvailable": counselor.EmergencyAvailable,
		},
		"rating":       counselor.Rating,
		"reviews":      counselor.Reviews,
		"languages":    counselor.Languages,
		"sessionTypes": counselor.SessionTypes,
		"fees": gin.H{
			"consultation": counselor.ConsultationFee,
			"followUp":     counselor.FollowUpFee,
		},
	}
}
