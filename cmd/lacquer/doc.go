// Command lacquer batch-converts FLAC audio to ALAC in M4A containers by
// shelling out to ffmpeg or afconvert.
package main
