package model

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Doctor represents a bookable practitioner. Doctors are seeded at startup
// and are read-only from the booking flow's perspective.
// @Description Doctor information
type Doctor struct {
	gorm.Model
	Username   string  `json:"username" gorm:"uniqueIndex;size:191" example:"pratik.sharma"`
	Password   string  `json:"-" gorm:"column:password"`
	Name       string  `json:"name" gorm:"column:name" example:"Dr. Pratik Sharma"`
	Speciality string  `json:"speciality" gorm:"column:speciality;index" example:"Cardiologist"`
	Fees       int     `json:"fees" gorm:"column:fees" example:"1500"`
	// Availability stores weekday tokens joined by commas, e.g. "Mon,Wed,Fri".
	Availability string  `json:"availability" example:"Mon,Wed,Fri"`
	Rating       float64 `json:"rating" gorm:"default:4.5" example:"4.5"`
	Image        string  `json:"image" example:"/images/doctors/pratik-sharma.jpg"`
}

// AvailabilityDays splits the stored availability column into weekday tokens.
func (d *Doctor) AvailabilityDays() []string {
	if d.Availability == "" {
		return nil
	}
	parts := strings.Split(d.Availability, ",")
	days := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			days = append(days, t)
		}
	}
	return days
}

// JoinAvailability renders weekday tokens into the stored CSV form.
func JoinAvailability(days []string) string {
	cleaned := make([]string, 0, len(days))
	for _, d := range days {
		if t := strings.TrimSpace(d); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	return strings.Join(cleaned, ",")
}

type doctorSeed struct {
	Name         string
	Speciality   string
	Fees         int
	Availability []string
	Rating       float64
}

var doctorSeeds = []doctorSeed{
	{"Dr. Pratik Sharma", "Cardiologist", 1500, []string{"Mon", "Wed", "Fri"}, 4.5},
	{"Dr. Rishabh Jain", "Dermatologist", 950, []string{"Tue", "Thu", "Sat"}, 4.8},
	{"Dr. Parth Singh", "Pediatrician", 800, []string{"Mon", "Tue", "Thu"}, 4.7},
	{"Dr. Amrit Raj", "Orthopedic Surgeon", 1200, []string{"Wed", "Fri", "Sat"}, 4.9},
	{"Dr. Aman Bajpai", "Neurologist", 1100, []string{"Mon", "Thu", "Fri"}, 4.6},
	{"Dr. Akhilesh Deshmukh", "Ophthalmologist", 950, []string{"Tue", "Wed", "Sat"}, 4.7},
	{"Dr. Palak Yadav", "Gynecologist", 1050, []string{"Mon", "Wed", "Fri"}, 4.8},
	{"Dr. Sunidhi Sharma", "Psychiatrist", 1300, []string{"Tue", "Thu", "Sat"}, 4.5},
	{"Dr. Pradhi Raj", "Endocrinologist", 1000, []string{"Mon", "Wed", "Fri"}, 4.6},
	{"Dr. Akansha Mittal", "Urologist", 1100, []string{"Tue", "Thu", "Sat"}, 4.7},
	{"Dr. Vikas Mehta", "Cardiologist", 1400, []string{"Mon", "Tue", "Fri"}, 4.6},
	{"Dr. Priya Verma", "Dermatologist", 850, []string{"Wed", "Thu", "Sat"}, 4.7},
	{"Dr. Anil Agarwal", "Pediatrician", 950, []string{"Mon", "Thu", "Sun"}, 4.8},
	{"Dr. Shubham Rai", "Orthopedic Surgeon", 1300, []string{"Tue", "Fri", "Sat"}, 4.9},
	{"Dr. Manisha Gupta", "Neurologist", 1150, []string{"Mon", "Wed", "Thu"}, 4.5},
	{"Dr. Sudhir Patel", "Ophthalmologist", 1050, []string{"Tue", "Fri", "Sun"}, 4.7},
	{"Dr. Neha Yadav", "Gynecologist", 1250, []string{"Mon", "Wed", "Thu"}, 4.8},
	{"Dr. Arjun Verma", "Psychiatrist", 1500, []string{"Tue", "Fri", "Sat"}, 4.6},
	{"Dr. Shruti Desai", "Endocrinologist", 1100, []string{"Mon", "Wed", "Thu"}, 4.5},
	{"Dr. Ravi Kumar", "Urologist", 1200, []string{"Tue", "Wed", "Sat"}, 4.8},
	{"Dr. Sushil Chopra", "Cardiologist", 1350, []string{"Mon", "Thu", "Fri"}, 4.7},
	{"Dr. Neelam Bansal", "Dermatologist", 900, []string{"Tue", "Fri", "Sun"}, 4.6},
	{"Dr. Vishal Saini", "Pediatrician", 1000, []string{"Mon", "Wed", "Fri"}, 4.8},
	{"Dr. Anurag Tiwari", "Orthopedic Surgeon", 1250, []string{"Mon", "Wed", "Sat"}, 4.9},
	{"Dr. Aarti Pandey", "Neurologist", 950, []string{"Tue", "Thu", "Sat"}, 4.7},
	{"Dr. Rohit Joshi", "Ophthalmologist", 1000, []string{"Mon", "Fri", "Sun"}, 4.6},
	{"Dr. Shraddha Agarwal", "Gynecologist", 1100, []string{"Mon", "Thu", "Sat"}, 4.8},
	{"Dr. Rajesh Patil", "Psychiatrist", 1400, []string{"Tue", "Wed", "Sat"}, 4.5},
	{"Dr. Shalini Reddy", "Endocrinologist", 950, []string{"Mon", "Wed", "Thu"}, 4.7},
	{"Dr. Amanpreet Kaur", "Urologist", 1050, []string{"Tue", "Thu", "Sun"}, 4.6},
	{"Dr. Meenal Kapoor", "Gastroenterologist", 1200, []string{"Mon", "Wed", "Fri"}, 4.7},
	{"Dr. Tanvi Agarwal", "Pulmonologist", 1250, []string{"Tue", "Thu", "Sat"}, 4.8},
	{"Dr. Nikhil Mehta", "Rheumatologist", 1100, []string{"Mon", "Thu", "Sat"}, 4.6},
	{"Dr. Kiran Gupta", "Oncologist", 1500, []string{"Wed", "Fri", "Sun"}, 4.9},
	{"Dr. Amita Jain", "Nephrologist", 1300, []string{"Mon", "Tue", "Thu"}, 4.7},
	{"Dr. Sameer Patel", "Allergist", 950, []string{"Mon", "Wed", "Fri"}, 4.8},
	{"Dr. Ayesha Khan", "Hematologist", 1400, []string{"Tue", "Thu", "Sat"}, 4.6},
	{"Dr. Harish Verma", "Plastic Surgeon", 1800, []string{"Mon", "Wed", "Fri"}, 4.9},
}

// seedUsername derives a stable login name from the display name,
// e.g. "Dr. Pratik Sharma" -> "pratik.sharma".
func seedUsername(name string) string {
	name = strings.TrimPrefix(name, "Dr. ")
	fields := strings.Fields(strings.ToLower(name))
	return strings.Join(fields, ".")
}

// SeedDoctors inserts the initial doctor roster if it is not present yet.
// hashCredential turns the seed password into its stored form; it is injected
// so the model package does not depend on util.
func SeedDoctors(db *gorm.DB, hashCredential func(plain string) (hash string, salt string, err error)) error {
	for i, seed := range doctorSeeds {
		var existing Doctor
		err := db.Where("name = ?", seed.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		hash, _, err := hashCredential(fmt.Sprintf("password%d", i+1))
		if err != nil {
			return fmt.Errorf("failed to hash credential for %s: %w", seed.Name, err)
		}

		doctor := Doctor{
			Username:     seedUsername(seed.Name),
			Password:     hash,
			Name:         seed.Name,
			Speciality:   seed.Speciality,
			Fees:         seed.Fees,
			Availability: JoinAvailability(seed.Availability),
			Rating:       seed.Rating,
		}
		if err := db.Create(&doctor).Error; err != nil {
			return fmt.Errorf("failed to seed doctor %s: %w", seed.Name, err)
		}
	}
	return nil
}
