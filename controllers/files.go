package controllers

import (
	"net/http"
	"os"

	"github.com/aunefyren/coverr/files"
	"github.com/aunefyren/coverr/logger"
	"github.com/aunefyren/coverr/models"
	"github.com/aunefyren/coverr/modules"
	"github.com/gin-gonic/gin"
)

// APIProcessLibraries sweeps every configured library and returns the merged
// report. The sweep runs in the request, one file at a time.
func APIProcessLibraries(context *gin.Context) {
	configFile, err := files.GetConfig()
	if err != nil {
		logger.Log.Error("failed to get config file. error: " + err.Error())
		context.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get config file"})
		return
	}

	client := modules.NewITunesClient(configFile.CoverrVersion)
	report := models.ProcessReport{}

	for _, library := range configFile.CoverrLibraries {
		logger.Log.Info("processing library: " + library)

		libraryReport, err := modules.ScanFolderRecursive(library, client, configFile)
		if err != nil {
			logger.Log.Error("failed to process library '" + library + "'. error: " + err.Error())
		}

		report.Merge(libraryReport)
	}

	modules.LogReport(report)

	context.JSON(http.StatusOK, gin.H{"message": "libraries processed", "report": report})
}

type processFolderRequest struct {
	Path string `json:"path" binding:"required"`
}

// APIProcessFolder processes a single folder given in the request body.
func APIProcessFolder(context *gin.Context) {
	var request processFolderRequest

	err := context.ShouldBindJSON(&request)
	if err != nil {
		context.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	info, err := os.Stat(request.Path)
	if err != nil || !info.IsDir() {
		context.JSON(http.StatusBadRequest, gin.H{"error": "path is not a readable folder"})
		return
	}

	configFile, err := files.GetConfig()
	if err != nil {
		logger.Log.Error("failed to get config file. error: " + err.Error())
		context.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get config file"})
		return
	}

	client := modules.NewITunesClient(configFile.CoverrVersion)

	report, err := modules.ScanFolderRecursive(request.Path, client, configFile)
	if err != nil {
		logger.Log.Error("failed to process folder '" + request.Path + "'. error: " + err.Error())
		context.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process folder"})
		return
	}

	modules.LogReport(report)

	context.JSON(http.StatusOK, gin.H{"message": "folder processed", "report": report})
}
