package boot

import (
	"bookit/src/lib"
	"bookit/src/lib/aws"
	"bookit/src/lib/mailer"
	"bookit/src/models"
	"bookit/src/utils"
	"log"
	"os"

	"bookit/src/db"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.PromoCode{},
		&models.Booking{},
		&models.File{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// InitQueues starts the email queue consumer when a queue is configured.
func InitQueues() {
	emailQueue := os.Getenv("EMAIL_QUEUE")
	if emailQueue == "" {
		log.Println("EMAIL_QUEUE not set, delivering mail inline")
		return
	}
	consumer := aws.NewSQSConsumer(emailQueue, mailer.QueueHandler)
	consumer.Listen()
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	jid, err := lib.CreateDailyJob(utils.PurgeStaleRegistrations, 3, 0)
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return
	}
	jobsWaitingInQueue := len(sched.Jobs())
	log.Println("Jobs in queue:", jobsWaitingInQueue)
	log.Printf("Job ID: %s\n", *jid)
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
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
		return
	}
}
