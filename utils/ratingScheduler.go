package utils

import (
	"log"

	"edumart/database"
	courseModels "edumart/models/course"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// StartRatingScheduler refreshes course rating aggregates from reviews
// every night at 02:30.
func StartRatingScheduler() *cron.Cron {
	c := cron.New()

	_, err := c.AddFunc("30 2 * * *", func() {
		if err := RefreshCourseRatings(database.Database.Db); err != nil {
			log.Printf("Rating refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Printf("Failed to schedule rating refresh: %v", err)
		return c
	}

	c.Start()
	log.Println("Rating scheduler started.")
	return c
}

// RefreshCourseRatings recomputes every course's rating average and
// total count from its reviews.
func RefreshCourseRatings(db *gorm.DB) error {
	var courses []courseModels.Course
	if err := db.Where("is_deleted = ?", false).Find(&courses).Error; err != nil {
		return err
	}

	for _, crs := range courses {
		var result struct {
			Avg   float64
			Count int64
		}
		err := db.Model(&courseModels.Review{}).
			Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as count").
			Where("course_id = ?", crs.ID).
			Scan(&result).Error
		if err != nil {
			return err
		}

		err = db.Model(&courseModels.Course{}).
			Where("id = ?", crs.ID).
			Updates(map[string]interface{}{
				"rating":        result.Avg,
				"total_ratings": result.Count,
			}).Error
		if err != nil {
			return err
		}
	}

	return nil
}
