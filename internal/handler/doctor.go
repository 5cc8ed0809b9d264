package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"clubhub/internal/doctor"
)

// The doctor endpoints wrap everything in a {success, ...} envelope; the
// directory frontend predates the rest of the API and keys off that flag.

// ListDoctors serves the directory, filtered by the optional query params.
func (h *Handler) ListDoctors(c *gin.Context) {
	crit := doctor.Criteria{
		SearchTerm: c.Query("search"),
	}
	if s := c.Query("specialty"); s != "" {
		crit.Specialty = []string{s}
	}
	if l := c.Query("location"); l != "" {
		crit.Location = []string{l}
	}
	results := doctor.Search(doctor.Directory, crit)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "doctors": results})
}

// SearchDoctors runs the full composable filter.
func (h *Handler) SearchDoctors(c *gin.Context) {
	var crit doctor.Criteria
	if err := c.ShouldBindJSON(&crit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	results := doctor.Search(doctor.Directory, crit)
	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(results), "doctors": results})
}

// GetDoctor serves a single directory entry.
func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "doctor id must be a number"})
		return
	}
	d, ok := doctor.GetByID(doctor.Directory, id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Doctor not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "doctor": d})
}

// DoctorSpecialties serves the distinct specialties.
func (h *Handler) DoctorSpecialties(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "specialties": doctor.Specialties(doctor.Directory)})
}

// DoctorLocations serves the distinct locations.
func (h *Handler) DoctorLocations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "locations": doctor.Locations(doctor.Directory)})
}
