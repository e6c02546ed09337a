package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "time/tzdata"

	"codnect.io/chrono"

	"github.com/aunefyren/coverr/controllers"
	"github.com/aunefyren/coverr/files"
	"github.com/aunefyren/coverr/logger"
	"github.com/aunefyren/coverr/models"
	"github.com/aunefyren/coverr/modules"
	"github.com/aunefyren/coverr/routers"
	"github.com/aunefyren/coverr/utilities"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	utilities.PrintASCII()

	// Create files directory
	newPath := filepath.Join(".", "config")
	err := os.MkdirAll(newPath, os.ModePerm)
	if err != nil {
		fmt.Println("failed to create 'config' directory. error: " + err.Error())
		os.Exit(1)
	}
	fmt.Println("directory 'config' valid")

	// Load config file
	configFile, err := files.GetConfig()
	if err != nil {
		fmt.Println("failed to load configuration file. error: " + err.Error())
		os.Exit(1)
	}
	fmt.Println("configuration file loaded")

	// Create and define file for logging
	logger.InitLogger(configFile)

	// Set GIN mode
	if configFile.CoverrEnvironment != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Change the config to respect flags
	configFile, folderPath, filePath, err := parseFlags(configFile)
	if err != nil {
		logger.Log.Fatal("failed to parse input flags. error: " + err.Error())
		os.Exit(1)
	}
	logger.Log.Info("flags parsed")

	// Set time zone from config if it is not empty
	if configFile.Timezone != "" {
		loc, err := time.LoadLocation(configFile.Timezone)
		if err != nil {
			logger.Log.Info("failed to set time zone from config. error: " + err.Error())
			logger.Log.Info("removing value...")

			configFile.Timezone = ""
			err = files.SaveConfig(configFile)
			if err != nil {
				logger.Log.Fatal("failed to set new time zone in the config. error: " + err.Error())
				os.Exit(1)
			}

		} else {
			time.Local = loc
		}
	}
	logger.Log.Info("timezone set")

	// Create task scheduler for library sweeps
	taskScheduler := chrono.NewDefaultTaskScheduler()

	_, err = taskScheduler.ScheduleWithCron(func(ctx context.Context) {
		processLibraries(configFile)
	}, configFile.CoverrProcessCronSchedule)
	if err != nil {
		logger.Log.Info("library process task was not scheduled successfully.")
	}

	if configFile.CoverrProcessOnStartUp {
		processLibraries(configFile)
	}

	// process single folder path
	if folderPath != nil {
		client := modules.NewITunesClient(configFile.CoverrVersion)
		report, err := modules.ScanFolderRecursive(*folderPath, client, configFile)
		if err != nil {
			logger.Log.Error("failed to process folder. error: " + err.Error())
		}
		modules.LogReport(report)
	}

	// process single file path
	if filePath != nil {
		client := modules.NewITunesClient(configFile.CoverrVersion)
		record := modules.ProcessTrackFile(*filePath, client, configFile)
		logger.Log.Info("file processed with outcome: " + string(record.Outcome))
	}

	// Initialize Router
	router := initRouter()

	logger.Log.Info("router initialized.")

	log.Fatal(router.Run(":" + strconv.Itoa(configFile.CoverrPort)))
}

func initRouter() *gin.Engine {
	router := gin.Default()

	// API endpoint
	api := router.Group("/api")
	{
		api.GET("/ping", routers.APIPing)
		api.POST("/process", controllers.APIProcessLibraries)
		api.POST("/process/folder", controllers.APIProcessFolder)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Access-Control-Allow-Origin"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		AllowOriginFunc:  func(origin string) bool { return true },
		MaxAge:           12 * time.Hour,
	}))

	return router
}

func parseFlags(configFile models.ConfigStruct) (models.ConfigStruct, *string, *string, error) {
	// Define flag variables with the configuration file as default values
	var port = flag.Int("port", configFile.CoverrPort, "The port Coverr is listening on.")
	var externalURL = flag.String("externalurl", configFile.CoverrExternalURL, "The URL others would use to access Coverr.")
	var timezone = flag.String("tz", configFile.Timezone, "The timezone Coverr is running in.")

	// artwork flags
	var maxSize = flag.Int("maxsize", configFile.CoverrMaxArtworkSize, "The maximum artwork dimension in pixels before a resize.")
	var resolution = flag.Int("resolution", configFile.CoverrFetchResolution, "The resolution artwork is fetched at.")

	// folder and file
	var folderPath = flag.String("folder", "", "A single folder to process")
	var filePath = flag.String("file", "", "A single file to process")

	// Parse the flags from input
	flag.Parse()

	// Respect the flag if config is empty
	if port != nil {
		configFile.CoverrPort = *port
	}

	// Respect the flag if config is empty
	if externalURL != nil {
		configFile.CoverrExternalURL = *externalURL
	}

	// Respect the flag if config is empty
	if timezone != nil {
		configFile.Timezone = *timezone
	}

	// Respect the flag if config is empty
	if maxSize != nil {
		configFile.CoverrMaxArtworkSize = *maxSize
	}

	// Respect the flag if config is empty
	if resolution != nil {
		configFile.CoverrFetchResolution = *resolution
	}

	// Respect the flag if config is empty
	if folderPath != nil && *folderPath == "" {
		folderPath = nil
	}

	// Respect the flag if config is empty
	if filePath != nil && *filePath == "" {
		filePath = nil
	}

	// Failsafe, if port is 0, set to default 8080
	if configFile.CoverrPort == 0 {
		configFile.CoverrPort = 8080
	}

	// Save the new config
	err := files.SaveConfig(configFile)
	if err != nil {
		return models.ConfigStruct{}, folderPath, filePath, err
	}

	return configFile, folderPath, filePath, nil
}

func processLibraries(configFile models.ConfigStruct) {
	logger.Log.Info("library process task starting...")

	client := modules.NewITunesClient(configFile.CoverrVersion)
	report := models.ProcessReport{}

	for _, library := range configFile.CoverrLibraries {
		logger.Log.Info("processing: " + library)
		libraryReport, err := modules.ScanFolderRecursive(library, client, configFile)
		if err != nil {
			logger.Log.Error("failed to process library '" + library + "'. error: " + err.Error())
		} else {
			report.Merge(libraryReport)
		}
	}

	modules.LogReport(report)
	logger.Log.Info("library process task finished.")
}
