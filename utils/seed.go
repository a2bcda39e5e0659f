package utils

import (
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/Kinotsolarpower/Wash-GoPRO/models"
)

// staffAccounts are the fixed staff logins created at startup. Passwords
// match the legacy accounts and are stored bcrypt-hashed.
var staffAccounts = []struct {
	firstName string
	lastName  string
	email     string
	password  string
	address   string
	phone     string
}{
	{"Admin", "User", "admin@washgo.pro", "admin", "123 Admin Ave, New York, NY 10001", "555-0100"},
	{"Super", "Admin", "superadmin@washgo.pro", "superadmin", "1 Super Admin Way, San Francisco, CA 94102", "555-0199"},
	{"Tech", "Nichan", "tech@washgo.pro", "tech", "On The Road", "555-0101"},
}

// defaultPackages are the five seeded detailing packages with their
// localized names, prices and feature lists.
var defaultPackages = []models.ServicePackage{
	{
		Key: "pkg_1716301538352",
		Details: map[string]models.ServiceDetails{
			models.LocaleNL: {Name: "Exterieur Was & Decontaminatie", Price: 49, Features: []string{"Hogedruk voorwas", "Twee-emmer handwas", "Velgen en banden reiniging", "Chemische decontaminatie (ijzer & teer)", "Aanbrengen beschermende sealant"}},
			models.LocaleEN: {Name: "Exterior Wash & Decontamination", Price: 49, Features: []string{"High-pressure pre-wash", "Two-bucket hand wash", "Wheel and tire cleaning", "Chemical decontamination (iron & tar)", "Protective sealant applied"}},
			models.LocaleFR: {Name: "Lavage & Décontamination Extérieur", Price: 49, Features: []string{"Prélavage haute pression", "Lavage manuel à deux seaux", "Nettoyage des jantes et pneus", "Décontamination chimique (fer & goudron)", "Application d'un scellant protecteur"}},
		},
	},
	{
		Key: "pkg_1716301538353",
		Details: map[string]models.ServiceDetails{
			models.LocaleNL: {Name: "Dieptereiniging Interieur & Bekleding", Price: 79, Features: []string{"Volledig stofzuigen van het interieur", "Dieptereiniging van stoffen/leren stoelen", "Reiniging van tapijten en matten", "Dashboard- en paneelreiniging", "Ramen reinigen (binnenkant)"}},
			models.LocaleEN: {Name: "Deep Interior Cleaning & Upholstery", Price: 79, Features: []string{"Complete interior vacuum", "Deep cleaning of fabric/leather seats", "Carpet and mat shampooing", "Dashboard and panel cleaning", "Interior window cleaning"}},
			models.LocaleFR: {Name: "Nettoyage en Profondeur Intérieur & Sellerie", Price: 79, Features: []string{"Aspiration complète de l'intérieur", "Nettoyage en profondeur des sièges en tissu/cuir", "Nettoyage des moquettes et tapis", "Nettoyage tableau de bord et panneaux", "Nettoyage des vitres (intérieur)"}},
		},
	},
	{
		Key: "pkg_1716301538354",
		Details: map[string]models.ServiceDetails{
			models.LocaleNL: {Name: "Volledig Detailing Pakket", Price: 119, Features: []string{"Alle diensten van Exterieur Was", "Alle diensten van Interieur Dieptereiniging", "Kunststof exterieurdelen behandelen", "Motorruimte reiniging (op verzoek)", "Luxe interieurgeur"}},
			models.LocaleEN: {Name: "Comprehensive Detailing Package", Price: 119, Features: []string{"All services from Exterior Wash", "All services from Interior Deep Clean", "Exterior plastic trim restored", "Engine bay cleaning (on request)", "Luxury interior fragrance"}},
			models.LocaleFR: {Name: "Forfait Detailing Complet", Price: 119, Features: []string{"Tous les services du Lavage Extérieur", "Tous les services du Nettoyage en Profondeur Intérieur", "Restauration des plastiques extérieurs", "Nettoyage du compartiment moteur (sur demande)", "Parfum d'intérieur de luxe"}},
		},
	},
	{
		Key: "pkg_1716301538355",
		Details: map[string]models.ServiceDetails{
			models.LocaleNL: {Name: "Premium Wax & Polish", Price: 89, Features: []string{"Inclusief Exterieur Was & Decontaminatie", "Lichte polijstbehandeling om glans te herstellen", "Aanbrengen van hoogwaardige Carnauba wax", "Verbetert de kleurdiepte", "Biedt 3-6 maanden bescherming"}},
			models.LocaleEN: {Name: "Premium Wax & Polish", Price: 89, Features: []string{"Includes Exterior Wash & Decontamination", "Light polish to enhance gloss", "Application of high-grade Carnauba wax", "Improves color depth", "Provides 3-6 months of protection"}},
			models.LocaleFR: {Name: "Cire & Lustrage Premium", Price: 89, Features: []string{"Inclut Lavage & Décontamination Extérieur", "Polissage léger pour rehausser la brillance", "Application d'une cire Carnauba de haute qualité", "Améliore la profondeur de la couleur", "Offre 3-6 mois de protection"}},
		},
	},
	{
		Key: "pkg_1716301538356",
		Details: map[string]models.ServiceDetails{
			models.LocaleNL: {Name: "Lakcorrectie & Polijsten", Price: 249, Features: []string{"Inclusief Exterieur Was & Decontaminatie", "Meer-staps polijstproces", "Verwijdering van 70-90% van de krassen", "Herstelt diepe glans en reflectie", "Voorbereiding voor keramische coating"}},
			models.LocaleEN: {Name: "Paint Correction & Polishing", Price: 249, Features: []string{"Includes Exterior Wash & Decontamination", "Multi-stage machine polishing", "Removes 70-90% of swirls and scratches", "Restores deep gloss and reflection", "Prepares surface for ceramic coating"}},
			models.LocaleFR: {Name: "Correction & Polissage de la Peinture", Price: 249, Features: []string{"Inclut Lavage & Décontamination Extérieur", "Processus de polissage en plusieurs étapes", "Élimination de 70-90% des rayures", "Restaure une brillance et une réflexion profondes", "Préparation pour un revêtement céramique"}},
		},
	},
}

// demoSubscriptionPackage is the plan seeded for the first customer found
const demoSubscriptionPackage = "pkg_1716301538354" // Comprehensive Detailing

// Seed populates staff accounts, default packages, the surge multiplier and
// the demo subscription. Each step is idempotent.
func Seed(db *gorm.DB) error {
	if err := seedStaff(db); err != nil {
		return err
	}
	if err := seedPackages(db); err != nil {
		return err
	}
	if err := seedSurge(db); err != nil {
		return err
	}
	return seedSubscription(db)
}

func seedStaff(db *gorm.DB) error {
	for _, account := range staffAccounts {
		var existing models.User
		if err := db.Where("email = ?", account.email).First(&existing).Error; err == nil {
			continue
		}
		hash, err := HashPassword(account.password)
		if err != nil {
			return err
		}
		user := models.User{
			FirstName:    account.firstName,
			LastName:     account.lastName,
			Email:        account.email,
			PasswordHash: hash,
			Address:      account.address,
			Phone:        account.phone,
		}
		if err := db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Seeded staff account %s", account.email)
	}
	return nil
}

func seedPackages(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.ServicePackage{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, pkg := range defaultPackages {
		record := pkg
		if err := db.Create(&record).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d default service packages", len(defaultPackages))
	return nil
}

func seedSurge(db *gorm.DB) error {
	var setting models.Setting
	if err := db.Where("key = ?", models.SurgeMultiplierKey).First(&setting).Error; err == nil {
		return nil
	}
	return db.Create(&models.Setting{Key: models.SurgeMultiplierKey, Value: "1"}).Error
}

// seedSubscription creates one active demo subscription for the first
// non-staff user, once, if any such user exists.
func seedSubscription(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Subscription{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var users []models.User
	if err := db.Order("created_at").Find(&users).Error; err != nil {
		return err
	}
	for _, user := range users {
		if models.IsStaff(user.Email) {
			continue
		}
		subscription := models.Subscription{
			SubID:           NewSubscriptionID(),
			UserEmail:       user.Email,
			PackageKey:      demoSubscriptionPackage,
			Status:          models.SubscriptionActive,
			StartDate:       time.Now(),
			WashesRemaining: 3,
		}
		if err := db.Create(&subscription).Error; err != nil {
			return err
		}
		log.Printf("Seeded demo subscription for %s", user.Email)
		return nil
	}
	return nil
}
