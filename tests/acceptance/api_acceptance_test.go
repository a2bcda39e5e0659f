package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Kinotsolarpower/Wash-GoPRO/config"
	"github.com/Kinotsolarpower/Wash-GoPRO/controllers"
	"github.com/Kinotsolarpower/Wash-GoPRO/middleware"
	"github.com/Kinotsolarpower/Wash-GoPRO/models"
	"github.com/Kinotsolarpower/Wash-GoPRO/services"
	"github.com/Kinotsolarpower/Wash-GoPRO/tests/testutil"
	"github.com/Kinotsolarpower/Wash-GoPRO/utils"
)

// APIAcceptanceTestSuite drives the API over real HTTP against a live test
// server, covering the customer journey from analysis to package management.
type APIAcceptanceTestSuite struct {
	suite.Suite
	server    *httptest.Server
	db        *gorm.DB
	cfg       *config.Config
	aiService *services.MockAIService
}

// SetupSuite runs once before all tests
func (suite *APIAcceptanceTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	os.Setenv("GO_ENV", "test")
	os.Setenv("DATABASE_URL", "file::memory:?cache=shared")
	os.Setenv("JWT_SECRET", "acceptance-test-secret")

	cfg, err := config.Load()
	suite.NoError(err)
	suite.cfg = cfg

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.Booking{},
		&models.ServicePackage{},
		&models.Subscription{},
		&models.Setting{},
	)
	suite.NoError(err)
	config.SetDB(db)
	suite.NoError(utils.Seed(db))

	services.NewMockPhotoService().SetAsMockForTesting()
	suite.aiService = services.NewMockAIService()
	suite.aiService.SetAsMockForTesting()

	suite.server = httptest.NewServer(suite.createRouter())
}

// TearDownSuite runs once after all tests
func (suite *APIAcceptanceTestSuite) TearDownSuite() {
	suite.server.Close()
	if suite.db != nil {
		sqlDB, _ := suite.db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	}
}

// SetupTest resets the mock AI gateway between tests
func (suite *APIAcceptanceTestSuite) SetupTest() {
	suite.aiService.Err = nil
	suite.aiService.Report = nil
	suite.aiService.PackageDetails = nil
}

// createRouter assembles the API surface under test
func (suite *APIAcceptanceTestSuite) createRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	authenticated := middleware.EnsureValidToken(suite.cfg)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/auth/login", controllers.Login)
		v1.POST("/auth/guest", controllers.Guest)
		v1.GET("/users/me", authenticated, controllers.GetMyProfile)
		v1.GET("/packages", controllers.ListPackages)
		v1.POST("/packages", authenticated, middleware.RequireRole(models.RoleSuperAdmin), controllers.CreatePackage)
		v1.POST("/analysis", authenticated, controllers.AnalyzeVehicle)
		v1.GET("/assistant/queries", authenticated, middleware.RequireRole(models.RoleAdmin), controllers.ListQueries)
	}
	return router
}

// login authenticates over the wire and returns the session token
func (suite *APIAcceptanceTestSuite) login(email, password string) string {
	body, _ := json.Marshal(map[string]string{"email": email, "password": password})
	resp, err := http.Post(suite.server.URL+"/api/v1/auth/login", "application/json", bytes.NewReader(body))
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	var envelope map[string]interface{}
	suite.NoError(json.NewDecoder(resp.Body).Decode(&envelope))
	return envelope["data"].(map[string]interface{})["token"].(string)
}

func (suite *APIAcceptanceTestSuite) decode(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	suite.NoError(err)
	var envelope map[string]interface{}
	suite.NoError(json.Unmarshal(raw, &envelope))
	return envelope
}

func (suite *APIAcceptanceTestSuite) TestGuestAnalysisJourney() {
	// Guest session over the wire
	resp, err := http.Post(suite.server.URL+"/api/v1/auth/guest", "application/json", nil)
	suite.Require().NoError(err)
	envelope := suite.decode(resp)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)
	guestToken := envelope["data"].(map[string]interface{})["token"].(string)

	// The mock inspection recommends the seeded wash package
	suite.aiService.Report = &models.DamageReport{
		Make:              "Audi",
		Model:             "A4",
		Color:             "Black",
		PersuasiveSummary: "Light contamination across the paintwork.",
		ExteriorIssues:    []models.Issue{{Area: "Hood", Observation: "Iron fallout", Recommendation: "Decontamination wash"}},
		InteriorIssues:    []models.Issue{},
		BestSuggestionKey: "pkg_1716301538352",
		RiskScore:         35,
	}

	// Submit both photos and the plate as multipart form data
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	suite.NoError(writer.WriteField("license_plate", "1-ABC-123"))
	suite.NoError(writer.WriteField("locale", "nl"))
	for _, field := range []string{"exterior", "interior"} {
		part, err := writer.CreateFormFile(field, field+".jpg")
		suite.NoError(err)
		_, err = part.Write([]byte("fake-jpeg-bytes"))
		suite.NoError(err)
	}
	suite.NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, suite.server.URL+"/api/v1/analysis", body)
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+guestToken)

	resp, err = http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	envelope = suite.decode(resp)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	report := data["report"].(map[string]interface{})
	suite.Equal("pkg_1716301538352", report["bestSuggestionKey"])
	suite.Equal(float64(35), data["risk_score"])
	suite.NotEmpty(data["before_photo_key"])
}

func (suite *APIAcceptanceTestSuite) TestSuperAdminCreatesPackage() {
	token := suite.login("superadmin@washgo.pro", "superadmin")

	suite.aiService.PackageDetails = &models.ServiceDetails{
		Name:     "Ceramic Shield",
		Price:    199,
		Features: []string{"Ceramic coating", "2 year protection"},
	}

	body, _ := json.Marshal(map[string]string{"prompt": "ceramic coating package for 199 euro"})
	req, err := http.NewRequest(http.MethodPost, suite.server.URL+"/api/v1/packages", bytes.NewReader(body))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	envelope := suite.decode(resp)
	suite.Require().Equal(http.StatusCreated, resp.StatusCode)

	created := envelope["data"].(map[string]interface{})
	details := created["details"].(map[string]interface{})
	suite.Equal("Ceramic Shield", details["en"].(map[string]interface{})["name"])

	// the catalog now lists six packages
	listResp, err := http.Get(suite.server.URL + "/api/v1/packages")
	suite.Require().NoError(err)
	listEnvelope := suite.decode(listResp)
	packages := listEnvelope["data"].(map[string]interface{})["packages"].([]interface{})
	suite.Len(packages, 6)
}

func (suite *APIAcceptanceTestSuite) TestRoleGateOverTheWire() {
	techToken := testutil.IssueTestToken(suite.T(), suite.cfg, "tech@washgo.pro")

	req, err := http.NewRequest(http.MethodGet, suite.server.URL+"/api/v1/assistant/queries", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+techToken)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	defer resp.Body.Close()
	suite.Equal(http.StatusForbidden, resp.StatusCode)
}

func (suite *APIAcceptanceTestSuite) TestProfileRoundTrip() {
	token := suite.login("admin@washgo.pro", "admin")

	req, err := http.NewRequest(http.MethodGet, suite.server.URL+"/api/v1/users/me", nil)
	suite.Require().NoError(err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	suite.Require().NoError(err)
	envelope := suite.decode(resp)
	suite.Require().Equal(http.StatusOK, resp.StatusCode)

	data := envelope["data"].(map[string]interface{})
	suite.Equal("admin@washgo.pro", data["email"])
	suite.Equal("Admin", data["first_name"])
	suite.Equal(models.RoleAdmin, data["role"])
}

func TestAPIAcceptanceTestSuite(t *testing.T) {
	testutil.MustSetTestEnvironment(t)
	testutil.RequireTestEnvironment(t)
	suite.Run(t, new(APIAcceptanceTestSuite))
}
