// Package datasets holds the static knowledge-base records the seeding
// commands load. The lists are fixed: ids are unique within a dataset and
// the records never change at runtime.
package datasets

import "github.com/variphi/kbseed/internal/kb"

// NVR is the NVR streaming and recording documentation set.
func NVR() kb.Dataset {
	return kb.Dataset{
		Name:       "nvr",
		Collection: "nvr_streaming_recording",
		ProbeText:  "How to set up HLS streaming?",
		Documents: []kb.Document{
			// Streaming protocols
			{
				ID:       "doc_rtsp",
				Text:     "RTSP (Real-Time Streaming Protocol) is supported for live video streaming. To configure RTSP streaming, go to NVR settings > Streaming > RTSP. Enable RTSP server and set the port (default: 554). RTSP URL format: rtsp://nvr-ip:port/stream-path",
				Metadata: map[string]string{"category": "streaming", "topic": "protocols", "protocol": "RTSP"},
			},
			{
				ID:       "doc_rtmp",
				Text:     "RTMP streaming is available for external streaming services like YouTube Live, Twitch, or Facebook Live. Configure RTMP in NVR settings > Streaming > RTMP. Enter the RTMP server URL and stream key provided by your streaming platform.",
				Metadata: map[string]string{"category": "streaming", "topic": "protocols", "protocol": "RTMP"},
			},
			{
				ID:       "doc_hls",
				Text:     "HLS (HTTP Live Streaming) protocol is supported for web-based playback. To set up HLS streaming, enable it in NVR settings > Streaming > HLS. HLS creates adaptive bitrate streams that work well in web browsers. The HLS stream URL format: http://nvr-ip:port/hls/stream.m3u8",
				Metadata: map[string]string{"category": "streaming", "topic": "protocols", "protocol": "HLS"},
			},

			// Recording configuration
			{
				ID:       "doc_bitrates",
				Text:     "Recording bitrates can be configured in NVR settings > Recording > Bitrate. Available options: 1 Mbps (low quality, saves storage), 2 Mbps (medium quality, balanced), 4 Mbps (high quality, uses more storage). Higher bitrates provide better video quality but consume more storage space.",
				Metadata: map[string]string{"category": "recording", "topic": "bitrate", "settings": "recording"},
			},
			{
				ID:       "doc_codecs",
				Text:     "NVR supports H.264 and H.265 codecs for video recording. H.264 is widely compatible and uses more storage. H.265 (HEVC) provides better compression, reducing storage by up to 50% while maintaining quality. Configure codec in NVR settings > Recording > Codec. H.265 is recommended for newer systems.",
				Metadata: map[string]string{"category": "recording", "topic": "codec", "settings": "recording"},
			},
			{
				ID:       "doc_resolution",
				Text:     "Video resolution options: 720p (1280x720), 1080p (1920x1080), and 4K (3840x2160). Configure resolution in NVR settings > Video > Resolution. Higher resolutions provide clearer images but require more storage and bandwidth. 1080p is recommended for most use cases.",
				Metadata: map[string]string{"category": "streaming", "topic": "quality", "settings": "video"},
			},

			// Recording schedules
			{
				ID:       "doc_schedule_continuous",
				Text:     "Continuous recording mode records video 24/7 without interruption. This mode uses the most storage but ensures no events are missed. Configure in NVR settings > Recording > Schedule > Continuous.",
				Metadata: map[string]string{"category": "recording", "topic": "schedule", "mode": "continuous"},
			},
			{
				ID:       "doc_schedule_motion",
				Text:     "Motion-triggered recording only records when motion is detected, saving significant storage space. Configure motion detection zones and sensitivity in NVR settings > Recording > Schedule > Motion Triggered. Adjust sensitivity to avoid false alarms.",
				Metadata: map[string]string{"category": "recording", "topic": "schedule", "mode": "motion"},
			},
			{
				ID:       "doc_schedule_custom",
				Text:     "Custom recording schedule allows you to set specific times for recording. For example, record only during business hours (9 AM - 5 PM) or during specific days. Configure in NVR settings > Recording > Schedule > Custom. Set start time, end time, and days of week.",
				Metadata: map[string]string{"category": "recording", "topic": "schedule", "mode": "custom"},
			},

			// Storage management
			{
				ID:       "doc_storage_format",
				Text:     "Recordings are stored in H.264 or H.265 format depending on codec settings. Files are typically saved as MP4 or proprietary NVR format. Storage location can be configured in NVR settings > Storage > Path. Ensure sufficient disk space is available.",
				Metadata: map[string]string{"category": "recording", "topic": "storage", "format": "video"},
			},
			{
				ID:       "doc_storage_retention",
				Text:     "Recording retention period determines how long videos are kept before automatic deletion. Configure in NVR settings > Storage > Retention. Options: 7 days, 30 days, 90 days, or custom. When storage is full, oldest recordings are deleted first (FIFO - First In First Out).",
				Metadata: map[string]string{"category": "recording", "topic": "storage", "retention": "management"},
			},
			{
				ID:       "doc_storage_management",
				Text:     "Storage management includes monitoring disk usage, setting up automatic cleanup, and configuring storage paths. Access in NVR settings > Storage > Management. View current usage, set alerts when storage is low (e.g., 80% full), and configure backup locations.",
				Metadata: map[string]string{"category": "recording", "topic": "storage", "management": "settings"},
			},

			// Playback features
			{
				ID:       "doc_playback_time",
				Text:     "Time-based playback allows you to search and play recordings by date and time. Use the calendar and time picker in the playback interface. Navigate to specific dates and times to review recorded footage. Supports fast forward, rewind, and frame-by-frame playback.",
				Metadata: map[string]string{"category": "recording", "topic": "playback", "feature": "time-based"},
			},
			{
				ID:       "doc_playback_event",
				Text:     "Event-based navigation lets you jump between motion events or alarm triggers. In playback mode, click 'Events' to see a timeline of all detected events. Click any event marker to jump directly to that moment in the recording.",
				Metadata: map[string]string{"category": "recording", "topic": "playback", "feature": "event-based"},
			},

			// Stream configuration
			{
				ID:       "doc_stream_quality",
				Text:     "Stream quality settings affect both live viewing and recording. Configure in NVR settings > Streaming > Quality. Options: Low (reduces bandwidth), Medium (balanced), High (best quality). Stream quality is separate from recording quality - you can have high-quality recording with lower stream quality to save bandwidth.",
				Metadata: map[string]string{"category": "streaming", "topic": "configuration", "setting": "quality"},
			},
			{
				ID:       "doc_stream_bitrate",
				Text:     "Stream bitrate configuration affects bandwidth usage and video quality. Higher bitrates provide better quality but require more bandwidth. Configure in NVR settings > Streaming > Bitrate. Recommended: 2-4 Mbps for 1080p streams. Adjust based on your network capacity and number of simultaneous viewers.",
				Metadata: map[string]string{"category": "streaming", "topic": "configuration", "setting": "bitrate"},
			},
		},
	}
}
