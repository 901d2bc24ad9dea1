package main

import (
	"encoding/csv"
	"log"
	"os"
	"strings"
	"time"

	"gymadmin/config"
	"gymadmin/database"
	"gymadmin/membership"
	"gymadmin/models"
)

// Bulk-loads members from members.csv. Expected columns:
// memberId,name,mobile,email,plan,lastPaymentDate
// The plan column matches plan names; lastPaymentDate is YYYY-MM-DD and
// defaults to today when blank.
func main() {
	config.LoadConfig()
	database.ConnectDb()

	file, err := os.Open("members.csv")
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)

	records, err := reader.ReadAll()
	if err != nil {
		log.Fatalf("Failed to read CSV: %v", err)
	}

	if len(records) < 2 {
		log.Fatal("CSV file is empty or has only headers")
	}

	header := records[0]
	log.Printf("CSV Headers: %v", header)
	log.Printf("Total rows to import: %d", len(records)-1)

	headerIndex := make(map[string]int)
	for i, h := range header {
		headerIndex[strings.TrimSpace(h)] = i
	}

	db := database.Database.Db

	// Cache plans by name to avoid a lookup per row
	var plans []models.MembershipPlan
	if err := db.Where("is_deleted = ?", false).Find(&plans).Error; err != nil {
		log.Fatalf("Failed to load plans: %v", err)
	}
	plansByName := make(map[string]models.MembershipPlan, len(plans))
	for _, p := range plans {
		plansByName[strings.ToLower(p.Name)] = p
	}

	inserted := 0
	skipped := 0

	for i, row := range records[1:] {
		code := getField(row, headerIndex, "memberId")
		name := getField(row, headerIndex, "name")
		mobile := getField(row, headerIndex, "mobile")
		planName := getField(row, headerIndex, "plan")

		if code == "" || name == "" || mobile == "" {
			log.Printf("Row %d: missing required field, skipping", i+2)
			skipped++
			continue
		}

		plan, ok := plansByName[strings.ToLower(planName)]
		if !ok {
			log.Printf("Row %d: unknown plan %q, skipping", i+2, planName)
			skipped++
			continue
		}

		// Duplicate member codes are skipped, not updated
		var existing models.Member
		if err := db.Where("member_code = ? AND is_deleted = ?", code, false).First(&existing).Error; err == nil {
			log.Printf("Row %d: member %s already exists, skipping", i+2, code)
			skipped++
			continue
		}

		paymentDate := membership.StartOfDay(time.Now())
		if raw := getField(row, headerIndex, "lastPaymentDate"); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				log.Printf("Row %d: invalid lastPaymentDate %q, skipping", i+2, raw)
				skipped++
				continue
			}
			paymentDate = parsed
		}

		member := models.Member{
			MemberCode:         code,
			Name:               name,
			Mobile:             mobile,
			Email:              getField(row, headerIndex, "email"),
			MembershipPlanID:   plan.ID,
			PlanDurationMonths: plan.DurationMonths,
			LastPaymentDate:    paymentDate,
			NextBillDate:       membership.NextBillDate(paymentDate, plan.DurationMonths),
			Status:             models.MemberActive,
		}

		if err := db.Create(&member).Error; err != nil {
			log.Printf("Row %d: failed to insert member %s: %v", i+2, code, err)
			skipped++
			continue
		}
		inserted++
	}

	log.Printf("Import complete. Inserted: %d, Skipped: %d", inserted, skipped)
}

func getField(row []string, headerIndex map[string]int, name string) string {
	idx, ok := headerIndex[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
