package utils

import (
	"log"
	"time"

	"gymadmin/config"
	"gymadmin/database"
	"gymadmin/membership"
	"gymadmin/models"

	"github.com/robfig/cron/v3"
)

// InitializeRenewalScheduler sets up the daily membership expiry check
func InitializeRenewalScheduler() {
	log.Println("[RENEWAL-SCHEDULER] Initializing renewal scheduler...")

	c := cron.New()

	// Run daily at 9 AM
	c.AddFunc("0 9 * * *", func() {
		log.Println("[RENEWAL-SCHEDULER] Running daily membership check...")
		ProcessExpiringMembers()
		ProcessExpiredMembers()
	})

	c.Start()
	log.Println("[RENEWAL-SCHEDULER] Renewal scheduler started - runs daily at 9 AM")
}

// ProcessExpiringMembers sends reminder emails to members whose next bill
// date falls inside the expiring-soon window and who have not been reminded
// for this cycle. Only the reminder_sent flag is mutated; status and billing
// dates are never touched here.
func ProcessExpiringMembers() {
	db := database.Database.Db
	today := membership.StartOfDay(time.Now())
	window := today.AddDate(0, 0, config.AppConfig.ExpiringSoonDays)

	var expiring []models.Member
	if err := db.
		Where("is_deleted = ? AND reminder_sent = ? AND status = ? AND email <> ''",
			false, false, models.MemberActive).
		Where("next_bill_date > ? AND next_bill_date <= ?", today, window).
		Preload("MembershipPlan").
		Find(&expiring).Error; err != nil {
		log.Printf("[RENEWAL-SCHEDULER] Error fetching expiring members: %v", err)
		return
	}

	log.Printf("[RENEWAL-SCHEDULER] Found %d members expiring soon", len(expiring))

	for _, m := range expiring {
		SendRenewalReminder(m.Email, m.Name, m.MembershipPlan.Name, m.NextBillDate)

		if err := db.Model(&m).Update("reminder_sent", true).Error; err != nil {
			log.Printf("[RENEWAL-SCHEDULER] Error marking reminder for member %d: %v", m.ID, err)
			continue
		}
		log.Printf("[RENEWAL-SCHEDULER] Sent expiry reminder for member %s to %s", m.MemberCode, m.Email)
	}
}

// ProcessExpiredMembers sends an expired notice to members whose bill date
// passed within the last day
func ProcessExpiredMembers() {
	db := database.Database.Db
	today := membership.StartOfDay(time.Now())
	yesterday := today.AddDate(0, 0, -1)

	var expired []models.Member
	if err := db.
		Where("is_deleted = ? AND status = ? AND email <> ''", false, models.MemberActive).
		Where("next_bill_date > ? AND next_bill_date <= ?", yesterday, today).
		Preload("MembershipPlan").
		Find(&expired).Error; err != nil {
		log.Printf("[RENEWAL-SCHEDULER] Error fetching expired members: %v", err)
		return
	}

	for _, m := range expired {
		SendMembershipExpiredEmail(m.Email, m.Name, m.MembershipPlan.Name)
		log.Printf("[RENEWAL-SCHEDULER] Sent expired notice for member %s to %s", m.MemberCode, m.Email)
	}
}
