package media

import (
	"encoding/json"
	"fmt"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// probeDuration 用 ffprobe 读取时长（秒）
func probeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var data struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &data); err != nil {
		return 0, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if data.Format.Duration == "" {
		return 0, nil
	}
	return strconv.ParseFloat(data.Format.Duration, 64)
}

// trimFile 截取 [start, end] 秒，流拷贝不重新编码
func trimFile(src, dst string, start, end float64) error {
	err := ffmpeg.Input(src, ffmpeg.KwArgs{
		"ss": strconv.FormatFloat(start, 'f', 3, 64),
		"to": strconv.FormatFloat(end, 'f', 3, 64),
	}).
		Output(dst, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().
		Run()
	if err != nil {
		return fmt.Errorf("ffmpeg trim failed: %w", err)
	}
	return nil
}
