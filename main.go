package main

import (
	"net/http"
	"os"

	"ranking-uni/controllers"
	"ranking-uni/driver"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("no .env file found, relying on environment")
	}
	if os.Getenv("SECRET") == "" {
		logrus.Fatal("SECRET variable is not set")
	}

	db := driver.ConnectDB()
	defer db.Close()
	driver.RunMigrations(db)

	controller := controllers.Controller{}
	universityController := controllers.UniversityController{}
	courseController := controllers.CourseController{}
	professorController := controllers.ProfessorController{}
	reviewController := controllers.ReviewController{}
	voteController := controllers.ReviewVoteController{}

	router := mux.NewRouter()

	router.HandleFunc("/signup", controller.Signup(db)).Methods("POST")
	router.HandleFunc("/login", controller.Login(db)).Methods("POST")
	router.HandleFunc("/refresh-token", controller.RefreshToken(db)).Methods("POST")

	router.HandleFunc("/universities", universityController.GetUniversities(db)).Methods("GET")
	router.HandleFunc("/universities/create", universityController.CreateUniversity(db)).Methods("POST")
	router.HandleFunc("/universities/departments", universityController.GetDepartments(db)).Methods("GET")

	router.HandleFunc("/courses", courseController.GetCourses(db)).Methods("GET")
	router.HandleFunc("/courses/search", courseController.SearchCourses(db)).Methods("GET")

	router.HandleFunc("/professors", professorController.GetProfessors(db)).Methods("GET")
	router.HandleFunc("/professors/create", professorController.CreateProfessor(db)).Methods("POST")

	router.HandleFunc("/reviews", reviewController.GetReviews(db)).Methods("GET")
	router.HandleFunc("/reviews", reviewController.CreateReview(db)).Methods("POST")

	router.HandleFunc("/review-votes", voteController.CreateVote(db)).Methods("POST")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	logrus.Infof("Server started on port %s", port)
	logrus.Fatal(http.ListenAndServe(":"+port, router))
}
