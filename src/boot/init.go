package boot

import (
	"log"
	"os"
	"time"

	"hbs/src/common"
	"hbs/src/config"
	"hbs/src/db"
	"hbs/src/lib"
	"hbs/src/models"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.Room{},
		&models.DayPrice{},
		&models.Reservation{},
		&models.LedgerEntry{},
		&models.Staff{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	seedAdminStaff(db)
	return db
}

// seedAdminStaff provisions the bootstrap admin account on first boot so the
// admin surface is reachable before any staff exist.
func seedAdminStaff(db *gorm.DB) {
	email := os.Getenv("STAFF_ADMIN_EMAIL")
	if email == "" {
		return
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Staff{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		staff := models.Staff{Email: email, Name: "Admin", Admin: true}
		if err := tx.Create(&staff).Error; err != nil {
			return err
		}
		log.Printf("Seeded admin staff account %s (id %d)\n", staff.Email, staff.ID)
		return nil
	})
	if err != nil {
		log.Printf("Error seeding staff account: %s\n", err.Error())
	}
}

// InitHooks wires the post-payment collaborators before traffic starts.
func InitHooks() {
	common.SetHooks(lib.MailNotifier{}, nil)
}

// InitScheduler starts the background sweep that cancels expired holds.
func InitScheduler() {
	id, err := lib.CreateCronJob(func() {
		if _, err := common.SweepExpired(time.Now()); err != nil {
			log.Printf("Error on scheduled sweep: %s\n", err.Error())
		}
	}, config.SweepInterval())
	if err != nil {
		log.Printf("Error scheduling sweep job: %s\n", err.Error())
		return
	}
	log.Printf("Sweep job scheduled: %s\n", *id)
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	err = sched.Shutdown()
	if err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
		return
	}
}
