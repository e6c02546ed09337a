package files

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/aunefyren/coverr/logger"
	"github.com/aunefyren/coverr/models"
	"github.com/sirupsen/logrus"
)

var coverrVersionParameter = "{{RELEASE_TAG}}"
var configPath, _ = filepath.Abs("./config")
var configFile = filepath.Join(configPath, "config.json")

func GetConfig() (config models.ConfigStruct, err error) {
	config = models.ConfigStruct{}

	// Create config.json if it doesn't exist
	if _, err := os.Stat(configFile); errors.Is(err, os.ErrNotExist) {
		fmt.Println("Config file does not exist. Creating...")

		err := CreateConfigFile()
		if err != nil {
			return config, err
		}
	}

	file, err := os.Open(configFile)
	if err != nil {
		fmt.Println("Get config file threw error trying to open the file.")
		return config, err
	}
	defer file.Close()
	decoder := json.NewDecoder(file)

	err = decoder.Decode(&config)
	if err != nil {
		fmt.Println("Get config file threw error trying to parse the file.")
		return config, err
	}

	anythingChanged := false

	if config.CoverrName == "" {
		// Set new value
		config.CoverrName = "Coverr"
		anythingChanged = true
	}

	if config.CoverrEnvironment == "" {
		// Set new value
		config.CoverrEnvironment = "prod"
		anythingChanged = true
	}

	if config.Timezone == "" {
		// Set new value
		config.Timezone = "Europe/Paris"
		anythingChanged = true
	}

	if config.CoverrPort == 0 {
		// Set new value
		config.CoverrPort = 8080
		anythingChanged = true
	}

	if config.CoverrMaxArtworkSize == 0 {
		// Set new value
		config.CoverrMaxArtworkSize = 400
		anythingChanged = true
	}

	if config.CoverrFetchResolution == 0 {
		// Set new value
		config.CoverrFetchResolution = 600
		anythingChanged = true
	}

	if config.CoverrSearchLimit == 0 {
		// Set new value
		config.CoverrSearchLimit = 5
		anythingChanged = true
	}

	if config.CoverrProcessCronSchedule == "" {
		// Every night at 03:00
		config.CoverrProcessCronSchedule = "0 0 3 * * *"
		anythingChanged = true
	}

	if config.CoverrLogLevel == "" {
		level := logrus.InfoLevel
		config.CoverrLogLevel = level.String()
		anythingChanged = true
	} else {
		_, err := logrus.ParseLevel(config.CoverrLogLevel)
		if err != nil {
			level := logrus.InfoLevel
			config.CoverrLogLevel = level.String()
			anythingChanged = true
		}
	}

	if anythingChanged {
		// Save new version of config json
		err = SaveConfig(config)
		if err != nil {
			return config, err
		}
	}

	config.CoverrVersion = coverrVersionParameter

	// Return config object
	return config, nil
}

// Creates empty config.json
func CreateConfigFile() error {
	var config models.ConfigStruct

	config.CoverrPort = 8080
	config.CoverrName = "Coverr"
	config.CoverrEnvironment = "prod"
	config.CoverrVersion = coverrVersionParameter
	config.CoverrMaxArtworkSize = 400
	config.CoverrFetchResolution = 600
	config.CoverrSearchLimit = 5
	config.CoverrProcessCronSchedule = "0 0 3 * * *"
	config.CoverrLibraries = []string{}

	level := logrus.InfoLevel
	config.CoverrLogLevel = level.String()

	err := SaveConfig(config)
	if err != nil {
		fmt.Println("Create config file threw error trying to save the file.")
		return err
	}

	return nil
}

// Saves the given config struct as config.json
func SaveConfig(config models.ConfigStruct) error {

	err := os.MkdirAll(configPath, os.ModePerm)
	if err != nil {
		logger.Log.Info("Failed to create directory for config. Error: " + err.Error())
		return errors.New("Failed to create directory for config.")
	}

	file, err := json.MarshalIndent(config, "", "	")
	if err != nil {
		return err
	}

	err = os.WriteFile(configFile, file, 0644)
	if err != nil {
		return err
	}

	return nil
}
