package endpoint

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	gocache "github.com/patrickmn/go-cache"
	"github.com/quickcare/quickcare-api/model"
	"github.com/quickcare/quickcare-api/util"
	"gorm.io/gorm"
)

// doctorCache keeps the last successful roster per filter so the listing can
// still answer when the database is briefly unreachable.
var doctorCache = gocache.New(5*time.Minute, 10*time.Minute)

type doctorQueryParams struct {
	Limit      int
	Offset     int
	Keyword    string
	Speciality string
}

func parseDoctorQueryParams(c *gin.Context) doctorQueryParams {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))
	return doctorQueryParams{
		Limit:      limit,
		Offset:     offset,
		Keyword:    c.Query("keyword"),
		Speciality: c.Query("speciality"),
	}
}

func (q doctorQueryParams) cacheKey() string {
	return fmt.Sprintf("doctors:%d:%d:%s:%s", q.Limit, q.Offset, strings.ToLower(q.Keyword), strings.ToLower(q.Speciality))
}

func fetchDoctors(db *gorm.DB, q doctorQueryParams) ([]model.Doctor, int64, error) {
	var doctors []model.Doctor
	var total int64

	query := db.Model(&model.Doctor{})
	if q.Keyword != "" {
		pattern := "%" + q.Keyword + "%"
		query = query.Where("name LIKE ? OR speciality LIKE ?", pattern, pattern)
	}
	if q.Speciality != "" {
		query = query.Where("speciality = ?", q.Speciality)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}
	if q.Offset > 0 {
		query = query.Offset(q.Offset)
	}
	err := query.Order("name asc").Find(&doctors).Error
	return doctors, total, err
}

// ListDoctors godoc
// @Summary      List doctors
// @Description  Retrieve the bookable doctor roster, optionally filtered by keyword or speciality
// @Tags         Doctor
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Limit number of results"
// @Param        offset query int false "Offset for pagination"
// @Param        keyword query string false "Match against name or speciality"
// @Param        speciality query string false "Exact speciality filter"
// @Success      200 {object} util.APIResponse "Doctors retrieved"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor [get]
func ListDoctors(c *gin.Context) {
	q := parseDoctorQueryParams(c)

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctors, total, err := fetchDoctors(db, q)
	if err != nil {
		// Serve the last known roster when the DB is unavailable.
		if cached, found := doctorCache.Get(q.cacheKey()); found {
			util.CallSuccessOK(c, util.APISuccessParams{
				Msg:  "Doctors retrieved (cached)",
				Data: cached,
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{
			Msg: "Failed to retrieve doctors",
			Err: err,
		})
		return
	}

	payload := map[string]interface{}{"total": total, "total_fetched": len(doctors), "doctors": doctors}
	doctorCache.Set(q.cacheKey(), payload, gocache.DefaultExpiration)

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Doctors retrieved",
		Data: payload,
	})
}
