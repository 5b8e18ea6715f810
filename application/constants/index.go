package constants

// veriface response codes
// these consist of 4 digit numbers
//
// the 1st 3 are randomly generated but represent specific scenarios
// 4th indicates if the response requires terminal interaction through a dialog box. 0 means it does not require. 1 means it requires.

var ENCRYPTION_KEY_EXPIRED uint = 6170      // request a new encryption key through the handshake endpoint
var SESSION_EXPIRED_RETRY uint = 7210       // start a new verification session and capture again
var QUALITY_TOO_LOW uint = 7321             // prompt the operator to recapture under better lighting
var FACE_NOT_RECOGNIZED uint = 7410         // offer manual check-in as a fallback
var LIVENESS_RETRY uint = 7511              // prompt the subject to blink again
var ATTENDANCE_ALREADY_RECORDED uint = 7620 // show the existing record instead of creating a duplicate

var SUPPORTED_DETECTION_MODELS = []string{"retinaface", "haar"}
var SUPPORTED_EMBEDDING_MODELS = []string{"facenet", "arcface"}

var MAX_EMBEDDINGS_PER_IDENTITY = 5

var SUPPORT_EMAIL = "support@veriface.io"

var SESSION_TTL_MINS int64 = 2
var MIN_BLINKS_REQUIRED int64 = 3
