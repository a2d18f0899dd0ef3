package hinge

/*
#cgo LDFLAGS: -framework CoreFoundation -framework IOKit

#include <stdlib.h>
#include <CoreFoundation/CoreFoundation.h>
#include <IOKit/hid/IOHIDManager.h>
#include <IOKit/hid/IOHIDDevice.h>

// Apple lid angle sensor: HID sensor page, orientation usage.
#define HINGE_VENDOR_ID   0x05AC
#define HINGE_PRODUCT_ID  0x8104
#define HINGE_USAGE_PAGE  0x0020
#define HINGE_USAGE       0x008A
#define HINGE_REPORT_ID   1

// Returned by hinge_open when no matching device exists.
const int HingeErrNoDevice = -1;

typedef struct {
	IOHIDManagerRef manager;
	IOHIDDeviceRef device;
} hinge_t;

static void hinge_set_int(CFMutableDictionaryRef dict, CFStringRef key, int value) {
	CFNumberRef n = CFNumberCreate(kCFAllocatorDefault, kCFNumberIntType, &value);
	CFDictionarySetValue(dict, key, n);
	CFRelease(n);
}

static int hinge_open(hinge_t **out) {
	IOHIDManagerRef manager = IOHIDManagerCreate(kCFAllocatorDefault, kIOHIDOptionsTypeNone);
	if (manager == NULL) {
		return kIOReturnNoMemory;
	}

	CFMutableDictionaryRef match = CFDictionaryCreateMutable(
		kCFAllocatorDefault, 0,
		&kCFTypeDictionaryKeyCallBacks,
		&kCFTypeDictionaryValueCallBacks);
	hinge_set_int(match, CFSTR(kIOHIDVendorIDKey), HINGE_VENDOR_ID);
	hinge_set_int(match, CFSTR(kIOHIDProductIDKey), HINGE_PRODUCT_ID);
	hinge_set_int(match, CFSTR(kIOHIDPrimaryUsagePageKey), HINGE_USAGE_PAGE);
	hinge_set_int(match, CFSTR(kIOHIDPrimaryUsageKey), HINGE_USAGE);
	IOHIDManagerSetDeviceMatching(manager, match);
	CFRelease(match);

	IOReturn ret = IOHIDManagerOpen(manager, kIOHIDOptionsTypeNone);
	if (ret != kIOReturnSuccess) {
		CFRelease(manager);
		return ret;
	}

	CFSetRef devices = IOHIDManagerCopyDevices(manager);
	if (devices == NULL || CFSetGetCount(devices) == 0) {
		if (devices != NULL) {
			CFRelease(devices);
		}
		IOHIDManagerClose(manager, kIOHIDOptionsTypeNone);
		CFRelease(manager);
		return HingeErrNoDevice;
	}

	CFIndex count = CFSetGetCount(devices);
	const void **values = malloc(sizeof(void *) * count);
	CFSetGetValues(devices, values);
	IOHIDDeviceRef device = (IOHIDDeviceRef)values[0];
	CFRetain(device);
	free(values);
	CFRelease(devices);

	ret = IOHIDDeviceOpen(device, kIOHIDOptionsTypeNone);
	if (ret != kIOReturnSuccess) {
		CFRelease(device);
		IOHIDManagerClose(manager, kIOHIDOptionsTypeNone);
		CFRelease(manager);
		return ret;
	}

	hinge_t *h = malloc(sizeof(hinge_t));
	h->manager = manager;
	h->device = device;
	*out = h;
	return kIOReturnSuccess;
}

static int hinge_read(hinge_t *h, int *angle) {
	uint8_t report[8] = {0};
	CFIndex length = sizeof(report);
	report[0] = HINGE_REPORT_ID;

	IOReturn ret = IOHIDDeviceGetReport(h->device, kIOHIDReportTypeFeature, HINGE_REPORT_ID, report, &length);
	if (ret != kIOReturnSuccess) {
		return ret;
	}
	if (length < 3) {
		return kIOReturnUnderrun;
	}

	*angle = (int)((uint16_t)report[1] | ((uint16_t)report[2] << 8));
	return kIOReturnSuccess;
}
*/
import "C"

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// lidSource reads the lid angle sensor found on recent MacBooks.
type lidSource struct {
	h *C.hinge_t
}

func openPlatformSource() (Source, error) {
	logrus.Tracef("openPlatformSource called")

	var h *C.hinge_t
	status := C.hinge_open(&h)
	if status == C.HingeErrNoDevice {
		return nil, fmt.Errorf("no lid angle sensor found on this device")
	}
	if status != 0 {
		return nil, fmt.Errorf("failed to open lid angle sensor: IOReturn 0x%x", uint32(status))
	}

	return &lidSource{h: h}, nil
}

// Angle implements Source.
func (s *lidSource) Angle() (float64, error) {
	var angle C.int
	status := C.hinge_read(s.h, &angle)
	if status != 0 {
		return 0, fmt.Errorf("failed to read lid angle: IOReturn 0x%x", uint32(status))
	}

	logrus.Tracef("lidSource.Angle returned %d", int(angle))

	return float64(angle), nil
}
