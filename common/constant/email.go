package constant

const EmailOrderConfirmationTemplate = `
Dear %s,

Thank you for your booth order! Your order has been successfully created.

Order Details:
------------------------------------------
Order No: %s
Booths: %s
Total Amount: %s
------------------------------------------

Please scan the KHQR code shown on the payment page to complete your
payment. Your booths are confirmed only after the payment is settled.

If you have any questions or need assistance, please contact our support
team at support@expo-booth.com.

Best regards,
Expo Booth Team

Note: This is an automated message, please do not reply to this email.
`

const EmailOrderReceiptTemplate = `
Dear %s,

Great news! Your payment has been successfully processed and your booths
are now reserved.

Receipt:
------------------------------------------
Order No: %s
%s
Total Amount: %s
Payment Time: %s
------------------------------------------

We look forward to seeing you at the exhibition!

Best regards,
Expo Booth Team
`

const EmailOrderCancellationTemplate = `
Dear %s,

We regret to inform you that your order has been cancelled because the
payment was not completed in time.

Order Details:
------------------------------------------
Order No: %s
Total Amount: %s
------------------------------------------

You may place a new order at any time while booths remain available.

Best regards,
Expo Booth Team

Note: This is an automated message, please do not reply to this email.
`
