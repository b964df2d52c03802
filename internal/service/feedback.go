package service

// Console replies. Each is prefixed with the line terminator, matching
// what operators' terminals already expect from the node.
const (
	msgGreeting      = "Hello there!"
	msgPrompt        = "\rEnter your password to continue.\r"
	msgWelcome       = "\rWelcome back, I'm ready!\r"
	msgIncorrect     = "\rIncorrect password!\r"
	msgTimeout       = "\rSession timeout!"
	msgError         = "\rError!\r"
	msgDone          = "\rDone.\r"
	msgOpening       = "\rOpening...\r"
	msgClosing       = "\rClosing...\r"
	msgAlreadyOpen   = "\rThe curtain is already open!\r"
	msgAlreadyClosed = "\rThe curtain is already closed!\r"
	msgRange         = "\rError: lamp value must be between 0 and 100!\r"
	msgInvalidFormat = "\rError: expected set time HH:MM:SS MM/DD/YY\r"
	msgOverflow      = "\rError: line too long!\r"
	msgMotorFault    = "\rError: curtain motor fault!\r"
)

var helpText = []string{
	"\r******  << Help >>  ******\r",
	"\r   set time (HH:MM:SS MM/DD/YY)\r",
	"-> Sets the desired time\r",
	"\r   set lamp (0 to 100)\r",
	"-> Sets the room brightness\r",
	"\r   open curtain\r",
	"-> Opens the curtain\r",
	"\r   close curtain\r",
	"-> Closes the curtain\r",
}
