package lib

import (
	"fmt"
	"net/url"
	"os"
	"path"

	"github.com/yeqown/go-qrcode"
)

// PaymentDeepLink builds a bank-transfer deep link carrying the amount due
// and the order reference as the transfer memo.
func PaymentDeepLink(bank, account, holder string, amount int64, memo string) string {
	return fmt.Sprintf(
		"https://img.vietqr.io/image/%s-%s-compact2.png?amount=%d&addInfo=%s&accountName=%s",
		bank, account, amount, url.QueryEscape(memo), url.QueryEscape(holder),
	)
}

// SavePaymentQR renders content as a QR image under TEMP_DIR so the share
// route can serve it. Returns the saved file path.
func SavePaymentQR(content, filename string) (string, error) {
	qrc, err := qrcode.New(content)
	if err != nil {
		return "", err
	}
	tempdir := os.Getenv("TEMP_DIR")
	filepath := path.Join(tempdir, fmt.Sprintf("%s.jpeg", filename))
	if err = qrc.Save(filepath); err != nil {
		return "", err
	}
	return filepath, nil
}
