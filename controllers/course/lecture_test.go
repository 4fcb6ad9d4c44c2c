package courseController

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"edumart/config"
	"edumart/database"
	"edumart/middleware"
	"edumart/models"
	courseModels "edumart/models/course"
	"edumart/services"
	courseValidator "edumart/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupCourseTest(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	config.AppConfig = &config.Config{
		JWTKey:         "test-jwt-key",
		SaltRound:      4,
		FrontendDomain: "http://localhost:5173",
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Get("/course/list", courseValidator.CourseList(), GetAllCourses)
	app.Post("/course/:id/lecture", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.CreateLecture(), CreateLecture)
	app.Get("/course/:id/lectures", middleware.JWTMiddleware, courseValidator.CourseID(), GetLectures)
	app.Get("/course/:id/lecture/:chapter", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.Chapter(), GetLectureByChapter)
	app.Post("/course/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), EnrollInCourse)
	app.Delete("/course/:id/enroll", middleware.JWTMiddleware, courseValidator.CourseID(), UnenrollFromCourse)
	app.Post("/course/:id/review", middleware.JWTMiddleware, courseValidator.CourseID(), courseValidator.CreateReview(), CreateReview)
	app.Get("/course/review/:review_id", middleware.JWTMiddleware, courseValidator.ReviewID(), GetReviewDetail)
	app.Put("/course/review/:review_id", middleware.JWTMiddleware, courseValidator.ReviewID(), courseValidator.UpdateReview(), UpdateReview)
	app.Delete("/course/review/:review_id", middleware.JWTMiddleware, courseValidator.ReviewID(), DeleteReview)
	app.Get("/user/:id/courses", courseValidator.OwnerID(), GetUserCourses)

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) models.User {
	t.Helper()

	user := models.User{Name: "Test User", Email: email, Password: "x", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, owner models.User, price float64) courseModels.Course {
	t.Helper()

	crs := courseModels.Course{
		Title:    "Classical Mechanics",
		Category: courseModels.CategoryPhysics,
		Price:    price,
		Currency: "USD",
		OwnerID:  owner.ID,
	}
	require.NoError(t, db.Create(&crs).Error)
	return crs
}

func bearerToken(t *testing.T, user models.User) string {
	t.Helper()

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}

	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func lectureBody(chapter int) map[string]interface{} {
	return map[string]interface{}{
		"title":        fmt.Sprintf("Lecture %d", chapter),
		"description":  "Newton's laws",
		"lecture_url":  "https://video.example.com/l1.mp4",
		"duration_sec": 1800,
		"chapter":      chapter,
	}
}

func TestCreateLectureChapterUniquePerCourse(t *testing.T) {
	app, db := setupCourseTest(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleTeacher)
	crs := seedCourse(t, db, owner, 49.99)
	otherCourse := seedCourse(t, db, owner, 19.99)
	token := bearerToken(t, owner)

	first := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/lecture", crs.ID), token, lectureBody(1))
	assert.Equal(t, http.StatusOK, first.StatusCode)

	// Same chapter in the same course is rejected
	dup := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/lecture", crs.ID), token, lectureBody(1))
	assert.Equal(t, http.StatusBadRequest, dup.StatusCode)

	var count int64
	db.Model(&courseModels.Lecture{}).Where("course_id = ? AND chapter = ?", crs.ID, 1).Count(&count)
	assert.Equal(t, int64(1), count)

	// Same chapter in a different course is fine
	other := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/lecture", otherCourse.ID), token, lectureBody(1))
	assert.Equal(t, http.StatusOK, other.StatusCode)
}

func TestCreateLectureForbiddenForOutsiders(t *testing.T) {
	app, db := setupCourseTest(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleTeacher)
	stranger := seedUser(t, db, "stranger@example.com", models.RoleTeacher)
	crs := seedCourse(t, db, owner, 49.99)

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/lecture", crs.ID), bearerToken(t, stranger), lectureBody(1))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCreateLectureAllowedForInstructor(t *testing.T) {
	app, db := setupCourseTest(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleTeacher)
	instructor := seedUser(t, db, "instructor@example.com", models.RoleTeacher)
	crs := seedCourse(t, db, owner, 49.99)
	require.NoError(t, db.Model(&crs).Association("Instructors").Append(&instructor))

	resp := doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/lecture", crs.ID), bearerToken(t, instructor), lectureBody(1))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetLecturesRequiresEnrollment(t *testing.T) {
	app, db := setupCourseTest(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleTeacher)
	student := seedUser(t, db, "student@example.com", models.RoleStudent)
	crs := seedCourse(t, db, owner, 49.99)

	path := fmt.Sprintf("/course/%d/lectures", crs.ID)

	resp := doJSON(t, app, http.MethodGet, path, bearerToken(t, student), nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	_, err := services.EnrollStudent(db, student, crs)
	require.NoError(t, err)

	resp = doJSON(t, app, http.MethodGet, path, bearerToken(t, student), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetLectureByChapter(t *testing.T) {
	app, db := setupCourseTest(t)
	owner := seedUser(t, db, "owner@example.com", models.RoleTeacher)
	crs := seedCourse(t, db, owner, 0)
	token := bearerToken(t, owner)

	require.Equal(t, http.StatusOK, doJSON(t, app, http.MethodPost, fmt.Sprintf("/course/%d/lecture", crs.ID), token, lectureBody(3)).StatusCode)

	resp := doJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d/lecture/3", crs.ID), token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Data courseModels.Lecture `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 3, body.Data.Chapter)
	assert.Equal(t, "Lecture 3", body.Data.Title)

	missing := doJSON(t, app, http.MethodGet, fmt.Sprintf("/course/%d/lecture/9", crs.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}
