package utils

import (
	"errors"
	"path/filepath"
	"strings"
)

// GetOutputPaths derives the default annotated video and record paths from
// the input video, e.g. clips/surf.mp4 with KCF gives surf_KCF.mp4 and surf_KCF.txt.
func GetOutputPaths(videoPath, tracker string) (video, record string, err error) {
	base := filepath.Base(videoPath)
	prefix := strings.TrimSuffix(base, filepath.Ext(base))
	if videoPath == "" || prefix == "" || prefix == "." || prefix == string(filepath.Separator) {
		return "", "", errors.New("cannot derive output name from video path: " + videoPath)
	}
	stem := prefix + "_" + strings.ToUpper(tracker)
	return stem + ".mp4", stem + ".txt", nil
}
